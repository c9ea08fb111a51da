package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/synthscan/synthscan/internal/models"
	"github.com/synthscan/synthscan/internal/session"
)

// renderSnapshot writes a textual view of the session state to w.
func renderSnapshot(w io.Writer, s session.Snapshot) {
	switch s.State {
	case session.StateIdle:
		fmt.Fprintln(w, "No analysis in progress. Type 'analyze' to begin.")

	case session.StateSubmitting:
		name := s.Path
		if s.Media != nil {
			name = s.Media.FileName
		}
		fmt.Fprintf(w, "Analyzing %s ...\n", name)

	case session.StateCompleted:
		if s.Media != nil {
			fmt.Fprintln(w, "File: "+describeMedia(s.Media))
		}
		if s.FromHistory {
			fmt.Fprintf(w, "Restored from history (%s)\n", shortID(s.RecordID))
		}
		printVerdict(w, s.Verdict)

	case session.StateFailed:
		if s.Media != nil {
			fmt.Fprintf(w, "Analysis of %s failed.\n", s.Media.FileName)
		} else {
			fmt.Fprintln(w, "Analysis failed.")
		}
		if s.Failure != nil {
			fmt.Fprintln(w, s.Failure.Message)
			if s.Failure.Category.Retryable() {
				fmt.Fprintln(w, "Type 'retry' to try again.")
			}
		}
	}
}

func printVerdict(w io.Writer, v *models.Verdict) {
	if v == nil {
		return
	}
	fmt.Fprintf(w, "Verdict: %s (%.1f%% confidence)\n", v.Label(), v.ConfidenceScore)
	if v.VerdictSummary != "" {
		fmt.Fprintln(w, v.VerdictSummary)
	}
	if len(v.ReasoningPoints) > 0 {
		fmt.Fprintln(w, "Reasoning:")
		for _, p := range v.ReasoningPoints {
			fmt.Fprintln(w, "  - "+p)
		}
	}
	if len(v.ArtifactsFound) > 0 {
		fmt.Fprintln(w, "Artifacts found:")
		for _, a := range v.ArtifactsFound {
			fmt.Fprintln(w, "  - "+a)
		}
	}
	printFindings(w, &v.TechnicalFindings)
}

func printFindings(w io.Writer, f *models.TechnicalFindings) {
	rows := [][2]string{
		{"lighting", f.LightingConsistency},
		{"texture", f.TextureQuality},
		{"anatomy", f.AnatomicalAccuracy},
		{"metadata", f.MetadataAnalysis},
		{"temporal", f.TemporalConsistency},
	}
	printed := false
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		if !printed {
			fmt.Fprintln(w, "Technical findings:")
			printed = true
		}
		fmt.Fprintf(w, "  %s: %s\n", row[0], row[1])
	}
}

// describeMedia renders "name (type, size)". Size is omitted for media
// restored from history, where only the preview survives.
func describeMedia(m *models.UploadedMedia) string {
	detail := m.ContentType
	if m.Size > 0 {
		detail += ", " + humanize.IBytes(uint64(m.Size))
	}
	return fmt.Sprintf("%s (%s)", m.FileName, detail)
}

// formatRecordLine renders one history entry for the list view.
func formatRecordLine(rec *models.Record) string {
	return fmt.Sprintf("%s  %s  %s  %s (%.1f%%)",
		shortID(rec.Id),
		rec.CreatedAt.Format("2006-01-02 15:04"),
		rec.FileName,
		rec.Verdict.Label(),
		rec.Verdict.ConfidenceScore)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
