package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/storelens/storelens/models"
)

// MIMEPdf is the content type for exported PDF documents.
const MIMEPdf = "application/pdf"

// PDF renders the report view as a PDF with the same deterministic section
// order as the DOCX export.
func (r *Renderer) PDF(view *models.ReportView) ([]byte, error) {
	if view == nil {
		return nil, models.NewAuditError(models.ErrCodeRenderMissing, "no report view to export", nil)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Header.
	title := "Store Audit Report"
	if r.branding.AgencyName != "" {
		title = r.branding.AgencyName + " — Store Audit Report"
	}
	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, title, "", "L", false)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, view.URL, "", "L", false)
	pdf.MultiCell(0, 5, "Generated "+view.GeneratedAt, "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	// Executive summary.
	heading(pdf, "Executive Summary")
	body(pdf, view.ExecutiveSummary)

	// Score.
	heading(pdf, "Overall Score")
	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, fmt.Sprintf("%d / %d — %s", view.Score.Value, view.Score.Max, view.Score.Label), "", "L", false)
	pdf.Ln(4)

	// Content sections.
	for _, s := range view.Sections {
		heading(pdf, s.Title)
		body(pdf, s.Critique)
	}

	// Action plan.
	heading(pdf, "Action Plan")
	for i, q := range view.QuickWins {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.MultiCell(0, 5, fmt.Sprintf("%d. %s", i+1, q.Title), "", "L", false)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, q.Detail, "", "L", false)
		if q.Tool != "" {
			pdf.SetTextColor(100, 100, 100)
			line := "Suggested tool: " + q.Tool
			if q.ToolURL != "" {
				line += " — " + q.ToolURL
			}
			pdf.MultiCell(0, 5, line, "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.Ln(2)
	}

	// Promotional footer.
	if r.branding.AgencyName != "" || r.branding.BookingURL != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		footer := "Prepared by " + r.branding.AgencyName
		if r.branding.AgencyName == "" {
			footer = "Prepared with storelens"
		}
		if r.branding.BookingURL != "" {
			footer += " — book a consultation: " + r.branding.BookingURL
		}
		pdf.MultiCell(0, 5, footer, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, models.NewAuditError(models.ErrCodeInternal, "failed to write PDF", err)
	}
	return buf.Bytes(), nil
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 7, text, "", "L", false)
	pdf.Ln(1)
}

func body(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, text, "", "L", false)
	pdf.Ln(3)
}
