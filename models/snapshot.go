package models

// Fallback literals used by the extractor when a field is absent from the HTML.
// These are defined defaults, not errors: extraction never fails.
const (
	FallbackTitle           = "No Title"
	FallbackMetaDescription = "No Meta Description"
)

// PageSnapshot is the fixed record of fields extracted from one fetched page.
// It is created once per audit, embedded into the prompt, and then discarded.
type PageSnapshot struct {
	// URL is the normalized URL the page was fetched from.
	URL string `json:"url"`

	// Title is the <title> text, or FallbackTitle when absent.
	Title string `json:"title"`

	// MetaDescription is the meta description content, or
	// FallbackMetaDescription when absent.
	MetaDescription string `json:"meta_description"`

	// Headings holds h1-h3 texts in document order, capped by config.
	Headings []string `json:"headings"`

	// BodyText is the main page content as Markdown, capped by config.
	BodyText string `json:"body_text"`

	// ImageAltStats is nil when the image pass is disabled.
	ImageAltStats *ImageAltStats `json:"image_alt_stats,omitempty"`
}

// ImageAltStats counts <img> elements and those missing alt text.
type ImageAltStats struct {
	Total      int `json:"total"`
	MissingAlt int `json:"missing_alt"`
}
