package render

import (
	"bytes"
	"fmt"

	"github.com/fumiama/go-docx"

	"github.com/storelens/storelens/models"
)

// MIMEDocx is the content type for exported DOCX documents.
const MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// DOCX renders the report view as a Word document. Section order is
// deterministic: title/date header, executive summary, score, content
// sections, action plan table, promotional footer.
func (r *Renderer) DOCX(view *models.ReportView) ([]byte, error) {
	if view == nil {
		return nil, models.NewAuditError(models.ErrCodeRenderMissing, "no report view to export", nil)
	}

	w := docx.New().WithDefaultTheme()

	// Header.
	title := "Store Audit Report"
	if r.branding.AgencyName != "" {
		title = r.branding.AgencyName + " — Store Audit Report"
	}
	w.AddParagraph().AddText(title).Size("36").Bold()
	w.AddParagraph().AddText(view.URL).Size("20").Color("666666")
	w.AddParagraph().AddText("Generated " + view.GeneratedAt).Size("20").Color("666666")
	w.AddParagraph()

	// Executive summary.
	w.AddParagraph().AddText("Executive Summary").Size("28").Bold()
	w.AddParagraph().AddText(view.ExecutiveSummary)
	w.AddParagraph()

	// Score.
	w.AddParagraph().AddText("Overall Score").Size("28").Bold()
	w.AddParagraph().AddText(fmt.Sprintf("%d / %d — %s", view.Score.Value, view.Score.Max, view.Score.Label)).Size("32").Bold()
	w.AddParagraph()

	// Content sections.
	for _, s := range view.Sections {
		w.AddParagraph().AddText(s.Title).Size("26").Bold()
		w.AddParagraph().AddText(s.Critique)
		w.AddParagraph()
	}

	// Action plan table: header + one row per quick win.
	w.AddParagraph().AddText("Action Plan").Size("28").Bold()
	tbl := w.AddTable(len(view.QuickWins)+1, 3, 9000, nil)
	for col, h := range []string{"Quick Win", "Detail", "Suggested Tool"} {
		tbl.TableRows[0].TableCells[col].AddParagraph().AddText(h).Bold()
	}
	for i, q := range view.QuickWins {
		row := tbl.TableRows[i+1]
		row.TableCells[0].AddParagraph().AddText(q.Title)
		row.TableCells[1].AddParagraph().AddText(q.Detail)
		tool := q.Tool
		if tool != "" && q.ToolURL != "" {
			tool = fmt.Sprintf("%s (%s)", q.Tool, q.ToolURL)
		}
		row.TableCells[2].AddParagraph().AddText(tool)
	}

	// Promotional footer.
	if r.branding.AgencyName != "" || r.branding.BookingURL != "" {
		w.AddParagraph()
		footer := "Prepared by " + r.branding.AgencyName
		if r.branding.AgencyName == "" {
			footer = "Prepared with storelens"
		}
		if r.branding.BookingURL != "" {
			footer += " — book a consultation: " + r.branding.BookingURL
		}
		w.AddParagraph().AddText(footer).Size("20").Color("666666")
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, models.NewAuditError(models.ErrCodeInternal, "failed to write DOCX", err)
	}
	return buf.Bytes(), nil
}
