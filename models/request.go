package models

// Personas the prompt builder knows how to phrase.
const (
	PersonaCRO     = "cro"     // conversion-rate optimization consultant
	PersonaBrand   = "brand"   // brand and design critic
	PersonaDefault = PersonaCRO
)

// Export formats for POST /api/v1/audit/export.
const (
	FormatDOCX = "docx"
	FormatPDF  = "pdf"
)

// AuditRequest is the payload for POST /api/v1/audit.
type AuditRequest struct {
	// URL is the store page to audit. Required. A missing scheme is
	// normalized to https:// by the fetcher.
	URL string `json:"url" binding:"required"`

	// Persona selects the reviewer voice for the prompt.
	// Default: "cro".
	Persona string `json:"persona,omitempty" binding:"omitempty,oneof=cro brand"`
}

// Defaults applies default values to unset fields.
func (r *AuditRequest) Defaults() {
	if r.Persona == "" {
		r.Persona = PersonaDefault
	}
}

// ExportRequest is the payload for POST /api/v1/audit/export.
type ExportRequest struct {
	URL     string `json:"url" binding:"required"`
	Persona string `json:"persona,omitempty" binding:"omitempty,oneof=cro brand"`

	// Format selects the document type. Default: "docx".
	Format string `json:"format,omitempty" binding:"omitempty,oneof=docx pdf"`
}

// Defaults applies default values to unset fields.
func (r *ExportRequest) Defaults() {
	if r.Persona == "" {
		r.Persona = PersonaDefault
	}
	if r.Format == "" {
		r.Format = FormatDOCX
	}
}

// ToAuditRequest converts an export request into the shared audit shape.
func (r *ExportRequest) ToAuditRequest() *AuditRequest {
	return &AuditRequest{URL: r.URL, Persona: r.Persona}
}
