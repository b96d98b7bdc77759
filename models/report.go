package models

import "fmt"

// Score bounds for AuditReport.Score.
const (
	ScoreMin = 1
	ScoreMax = 10
)

// AuditReport is the structured critique parsed from the model's response.
// The schema is dictated to the model in the prompt; every required field
// must be present or the report is treated as invalid.
type AuditReport struct {
	// ExecutiveSummary is a short overall assessment. Required.
	ExecutiveSummary string `json:"executive_summary"`

	// Score is the overall store score in [ScoreMin, ScoreMax]. Required.
	Score int `json:"score"`

	// Sections holds the per-area critiques. At least one is required.
	Sections []ReportSection `json:"sections"`

	// QuickWins is the ordered action plan. At least one is required.
	QuickWins []QuickWin `json:"quick_wins"`
}

// ReportSection is one area critique (e.g. design, trust signals, SEO).
type ReportSection struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Critique string `json:"critique"`
}

// QuickWin is a single recommended improvement paired with a suggested tool.
type QuickWin struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`

	// SuggestedTool is optional; when present the renderer resolves it to a
	// link through the affiliate table.
	SuggestedTool string `json:"suggested_tool,omitempty"`
}

// Validate checks that every required field is present and the score is in
// range. It returns a plain error; callers wrap it into the appropriate
// AuditError for their stage.
func (r *AuditReport) Validate() error {
	if r.ExecutiveSummary == "" {
		return fmt.Errorf("missing required field: executive_summary")
	}
	if r.Score < ScoreMin || r.Score > ScoreMax {
		return fmt.Errorf("score %d outside [%d,%d]", r.Score, ScoreMin, ScoreMax)
	}
	if len(r.Sections) == 0 {
		return fmt.Errorf("missing required field: sections")
	}
	for i, s := range r.Sections {
		if s.Title == "" || s.Critique == "" {
			return fmt.Errorf("sections[%d]: title and critique are required", i)
		}
	}
	if len(r.QuickWins) == 0 {
		return fmt.Errorf("missing required field: quick_wins")
	}
	for i, q := range r.QuickWins {
		if q.Title == "" || q.Detail == "" {
			return fmt.Errorf("quick_wins[%d]: title and detail are required", i)
		}
	}
	return nil
}
