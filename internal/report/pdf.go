// Package report renders an archived analysis as a PDF document for sharing
// outside the application.
package report

import (
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/synthscan/synthscan/internal/models"
)

const fontFamily = "Helvetica"

// WriteRecord renders rec as a single-page A4 report and writes it to path,
// overwriting any existing file.
func WriteRecord(path string, rec *models.Record) error {
	pdf := buildPDF(rec)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

func buildPDF(rec *models.Record) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(true, 14)
	pdf.SetTitle("SynthScan - Media Analysis Report", false)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(0, 9, "SynthScan - Media Analysis Report", "", 1, "L", false, 0, "")

	pdf.SetFont(fontFamily, "", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 6, fmt.Sprintf("Analyzed at: %s", rec.CreatedAt.Format("2006-01-02 15:04:05 MST")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Record: %s", safeText(rec.Id)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	sectionTitle(pdf, "1. Media")
	kv(pdf, "File Name", rec.FileName)
	kv(pdf, "Content Type", rec.ContentType)
	pdf.Ln(2)

	v := &rec.Verdict
	sectionTitle(pdf, "2. Verdict")
	kv(pdf, "Classification", v.Label())
	kv(pdf, "Confidence", fmt.Sprintf("%.1f%%", v.ConfidenceScore))
	kv(pdf, "Summary", v.VerdictSummary)
	pdf.Ln(2)

	sectionTitle(pdf, "3. Reasoning")
	bulletList(pdf, v.ReasoningPoints)
	pdf.Ln(2)

	sectionTitle(pdf, "4. Artifacts Found")
	bulletList(pdf, v.ArtifactsFound)
	pdf.Ln(2)

	sectionTitle(pdf, "5. Technical Findings")
	f := v.TechnicalFindings
	kv(pdf, "Lighting", f.LightingConsistency)
	kv(pdf, "Texture", f.TextureQuality)
	if f.AnatomicalAccuracy != "" {
		kv(pdf, "Anatomy", f.AnatomicalAccuracy)
	}
	if f.MetadataAnalysis != "" {
		kv(pdf, "Metadata", f.MetadataAnalysis)
	}
	if f.TemporalConsistency != "" {
		kv(pdf, "Temporal", f.TemporalConsistency)
	}

	pdf.Ln(4)
	pdf.SetFont(fontFamily, "", 9)
	pdf.SetTextColor(90, 90, 90)
	pdf.MultiCell(0, 4.5, "Note: This verdict is a statistical assessment produced by an automated detector and is not proof of origin.", "", "L", false)

	return pdf
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont(fontFamily, "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 7, title, "", 1, "L", false, 0, "")
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(pdf.GetX(), pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(2)
}

func kv(pdf *gofpdf.Fpdf, key, value string) {
	if strings.TrimSpace(value) == "" {
		value = "-"
	}
	pdf.SetFont(fontFamily, "B", 10)
	pdf.SetTextColor(30, 30, 30)
	pdf.CellFormat(36, 5.2, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.SetTextColor(20, 20, 20)
	pdf.MultiCell(0, 5.2, safeText(value), "", "L", false)
}

func bulletList(pdf *gofpdf.Fpdf, items []string) {
	if len(items) == 0 {
		pdf.SetFont(fontFamily, "", 10)
		pdf.SetTextColor(90, 90, 90)
		pdf.MultiCell(0, 5, "(none)", "", "L", false)
		return
	}
	pdf.SetFont(fontFamily, "", 10)
	pdf.SetTextColor(30, 30, 30)
	for _, item := range items {
		pdf.MultiCell(0, 5, "- "+safeText(item), "", "L", false)
	}
}

// safeText keeps the output inside what the core fonts can render: control
// characters become spaces and anything outside printable ASCII becomes '?'.
func safeText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.TrimSpace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 32 && r <= 126 {
			b.WriteRune(r)
		} else {
			b.WriteRune('?')
		}
	}
	return b.String()
}
