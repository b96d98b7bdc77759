// Package prompt renders a PageSnapshot into the model instruction string.
// Building the prompt is deterministic: same snapshot and persona, same
// string, so prompts are diffable across runs.
package prompt

import (
	"fmt"
	"strings"

	"github.com/storelens/storelens/models"
)

// maxBodyChars is a prompt-level guard independent of the extractor's cap,
// so a misconfigured extractor can never produce an oversized prompt.
const maxBodyChars = 6000

const personaCRO = `You are a senior conversion-rate optimization consultant who has audited
hundreds of e-commerce stores. You are direct, specific, and practical: every
critique names what is wrong and what to change.`

const personaBrand = `You are a brand strategist and design critic for direct-to-consumer
e-commerce. You judge visual identity, voice, and trust, and you are direct,
specific, and practical in every critique.`

const framework = `Evaluate the store page across these areas:
1. First impression and value proposition clarity
2. Design and visual hierarchy
3. Trust signals (reviews, policies, contact details)
4. SEO basics (title, meta description, heading structure, image alt text)
5. Conversion path (calls to action, friction, urgency)`

// schemaDescription dictates the exact JSON the model must return. The
// report parser enforces the same shape on the way back.
const schemaDescription = `Return ONLY a JSON object with exactly this structure, no surrounding prose
and no markdown code fences:

{
  "executive_summary": "<2-4 sentence overall assessment>",
  "score": <integer 1-10>,
  "sections": [
    {"key": "<snake_case_area_key>", "title": "<area name>", "critique": "<specific critique for this area>"}
  ],
  "quick_wins": [
    {"title": "<short action title>", "detail": "<what to do and why>", "suggested_tool": "<third-party tool name, or omit>"}
  ]
}

Rules:
- "score" must be a JSON number (integer), not a string.
- Include one section per evaluated area, in the order listed above.
- List 3-5 quick wins, highest impact first.`

// Build assembles the full instruction string for one audit.
func Build(snapshot *models.PageSnapshot, persona string) string {
	var b strings.Builder

	switch persona {
	case models.PersonaBrand:
		b.WriteString(personaBrand)
	default:
		b.WriteString(personaCRO)
	}
	b.WriteString("\n\n")
	b.WriteString(framework)
	b.WriteString("\n\nHere is what was extracted from the store page:\n\n")

	fmt.Fprintf(&b, "URL: %s\n", snapshot.URL)
	fmt.Fprintf(&b, "Title: %s\n", snapshot.Title)
	fmt.Fprintf(&b, "Meta description: %s\n", snapshot.MetaDescription)

	b.WriteString("Headings (in page order):\n")
	if len(snapshot.Headings) == 0 {
		b.WriteString("  (none found)\n")
	}
	for _, h := range snapshot.Headings {
		fmt.Fprintf(&b, "  - %s\n", h)
	}

	if stats := snapshot.ImageAltStats; stats != nil {
		fmt.Fprintf(&b, "Images: %d total, %d missing alt text\n", stats.Total, stats.MissingAlt)
	}

	b.WriteString("\nPage content (Markdown):\n")
	b.WriteString(clamp(snapshot.BodyText, maxBodyChars))
	b.WriteString("\n\n")
	b.WriteString(schemaDescription)

	return b.String()
}

// clamp cuts s to at most max runes.
func clamp(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
