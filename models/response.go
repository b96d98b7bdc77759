package models

// AuditResponse is the response for POST /api/v1/audit.
type AuditResponse struct {
	// Success indicates whether the full pipeline completed.
	Success bool `json:"success"`

	// Report is the rendered view of the audit. Nil on failure.
	Report *ReportView `json:"report,omitempty"`

	// Snapshot echoes what was extracted from the page, so callers can see
	// what the critique was based on.
	Snapshot *PageSnapshot `json:"snapshot,omitempty"`

	// Timing provides duration breakdowns for the pipeline stages.
	Timing TimingInfo `json:"timing"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// ReportView is the presentation-ready form of an AuditReport: gauge values
// computed, tool names resolved to links, branding applied.
type ReportView struct {
	URL         string `json:"url"`
	GeneratedAt string `json:"generated_at"` // RFC3339

	ExecutiveSummary string `json:"executive_summary"`

	Score ScoreGauge `json:"score"`

	Sections []SectionView `json:"sections"`

	QuickWins []QuickWinView `json:"quick_wins"`

	// AgencyName and BookingURL come from branding config; empty when unset.
	AgencyName string `json:"agency_name,omitempty"`
	BookingURL string `json:"booking_url,omitempty"`
}

// ScoreGauge is the score plus display metadata.
type ScoreGauge struct {
	Value int    `json:"value"`
	Max   int    `json:"max"`
	Label string `json:"label"` // e.g. "Needs Work", "Solid", "Excellent"
}

// SectionView is a rendered report section.
type SectionView struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Critique string `json:"critique"`
}

// QuickWinView is a rendered action item with its tool link resolved.
type QuickWinView struct {
	Title   string `json:"title"`
	Detail  string `json:"detail"`
	Tool    string `json:"tool,omitempty"`
	ToolURL string `json:"tool_url,omitempty"`
}

// TimingInfo breaks down the time spent in each pipeline stage.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// FetchMs is the time spent fetching the store page.
	FetchMs int64 `json:"fetch_ms"`

	// ExtractMs is the time spent parsing HTML into the snapshot.
	ExtractMs int64 `json:"extract_ms"`

	// ModelMs is the time spent waiting on the model request.
	ModelMs int64 `json:"model_ms"`

	// RenderMs is the time spent rendering the report.
	RenderMs int64 `json:"render_ms"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"` // "healthy"
	Uptime  string `json:"uptime"`
	Model   string `json:"model"`
	Version string `json:"version"`
}
