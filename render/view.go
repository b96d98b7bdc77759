// Package render maps a parsed AuditReport into presentation outputs: the
// JSON view model served by the API, and exported DOCX/PDF documents.
// Branding is an explicit immutable struct passed in at construction, never
// ambient globals.
package render

import (
	"time"

	"github.com/storelens/storelens/config"
	"github.com/storelens/storelens/models"
)

// Renderer holds the branding constants applied to every output.
type Renderer struct {
	branding config.BrandingConfig
}

// New creates a Renderer with the given branding.
func New(branding config.BrandingConfig) *Renderer {
	return &Renderer{branding: branding}
}

// BuildView converts a report into the presentation-ready view model.
// A report missing required fields is a RENDER_MISSING_FIELD error, never a
// blank section: no partial report is shown as if complete.
func (r *Renderer) BuildView(rpt *models.AuditReport, sourceURL string, now time.Time) (*models.ReportView, error) {
	if rpt == nil {
		return nil, models.NewAuditError(models.ErrCodeRenderMissing, "no report to render", nil)
	}
	if err := rpt.Validate(); err != nil {
		return nil, models.NewAuditError(models.ErrCodeRenderMissing, "report is missing required fields", err)
	}

	view := &models.ReportView{
		URL:              sourceURL,
		GeneratedAt:      now.UTC().Format(time.RFC3339),
		ExecutiveSummary: rpt.ExecutiveSummary,
		Score: models.ScoreGauge{
			Value: rpt.Score,
			Max:   models.ScoreMax,
			Label: scoreLabel(rpt.Score),
		},
		AgencyName: r.branding.AgencyName,
		BookingURL: r.branding.BookingURL,
	}

	for _, s := range rpt.Sections {
		view.Sections = append(view.Sections, models.SectionView{
			Key:      s.Key,
			Title:    s.Title,
			Critique: s.Critique,
		})
	}

	for _, q := range rpt.QuickWins {
		win := models.QuickWinView{
			Title:  q.Title,
			Detail: q.Detail,
			Tool:   q.SuggestedTool,
		}
		if q.SuggestedTool != "" {
			win.ToolURL = ResolveTool(q.SuggestedTool, r.branding.AffiliateLinks)
		}
		view.QuickWins = append(view.QuickWins, win)
	}

	return view, nil
}

// scoreLabel buckets the 1-10 score into a display band.
func scoreLabel(score int) string {
	switch {
	case score <= 4:
		return "Needs Work"
	case score <= 7:
		return "Solid"
	default:
		return "Excellent"
	}
}
