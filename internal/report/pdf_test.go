package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthscan/synthscan/internal/models"
)

func sampleRecord() *models.Record {
	return &models.Record{
		Id:          "3f1c9a2e-0000-4000-8000-000000000000",
		CreatedAt:   time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC),
		FileName:    "vacation.jpg",
		ContentType: "image/jpeg",
		Preview:     "data:image/jpeg;base64,aGVsbG8=",
		Verdict: models.Verdict{
			IsSynthetic:     true,
			ConfidenceScore: 87.5,
			VerdictSummary:  "Likely AI-generated",
			ReasoningPoints: []string{"inconsistent shadows", "repeating texture patches"},
			ArtifactsFound:  []string{"warped background text"},
			TechnicalFindings: models.TechnicalFindings{
				LightingConsistency: "two conflicting light directions",
				TextureQuality:      "plastic skin sheen",
				AnatomicalAccuracy:  "six fingers on the left hand",
			},
		},
	}
}

func TestWriteRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.pdf")

	require.NoError(t, WriteRecord(path, sampleRecord()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > 1000, "pdf suspiciously small: %d bytes", len(data))
	assert.Equal(t, "%PDF-", string(data[:5]))
}

func TestWriteRecord_SparseVerdict(t *testing.T) {
	rec := sampleRecord()
	rec.Verdict.ReasoningPoints = nil
	rec.Verdict.ArtifactsFound = nil
	rec.Verdict.TechnicalFindings = models.TechnicalFindings{
		LightingConsistency: "natural",
		TextureQuality:      "organic grain",
	}
	path := filepath.Join(t.TempDir(), "analysis.pdf")

	require.NoError(t, WriteRecord(path, rec))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(data[:5]))
}

func TestWriteRecord_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "analysis.pdf")
	assert.Error(t, WriteRecord(path, sampleRecord()))
}

func TestSafeText(t *testing.T) {
	assert.Equal(t, "plain ascii", safeText("plain ascii"))
	assert.Equal(t, "tabs and newlines", safeText(" tabs\tand\nnewlines "))
	assert.Equal(t, "caf?", safeText("café"))
}
