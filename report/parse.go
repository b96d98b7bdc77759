// Package report parses raw model text into a validated AuditReport.
// Models are told to return bare JSON but routinely wrap it in markdown
// code fences anyway; stripping them is the one post-processing step
// allowed before strict decoding.
package report

import (
	"encoding/json"
	"strings"

	"github.com/storelens/storelens/models"
)

// StripFences removes a leading ``` or ```json line and a trailing ```
// line from the model text. It is idempotent, and a no-op on unfenced
// input: parsing fenced and unfenced forms of the same payload must give
// identical results.
func StripFences(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			s = s[idx+1:]
		} else {
			// Single-line fence: the language tag sits inline, e.g.
			// ```json {"score": 7}```
			s = strings.TrimPrefix(s, "```")
			s = strings.TrimPrefix(strings.TrimSpace(s), "json")
		}
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-3]
	}

	return strings.TrimSpace(s)
}

// Parse strips fences, decodes the JSON, and validates the schema. Any
// failure is an LLM_PARSE_FAILURE carrying the raw text for diagnosis;
// a partially valid report is never returned.
func Parse(raw string) (*models.AuditReport, error) {
	stripped := StripFences(raw)

	// Extra fields from the model are tolerated; wrong types (e.g. a score
	// of "7" instead of 7) and malformed JSON are not.
	var rpt models.AuditReport
	if err := json.Unmarshal([]byte(stripped), &rpt); err != nil {
		return nil, models.NewParseFailure("model output is not valid JSON for the report schema", raw, err)
	}

	if err := rpt.Validate(); err != nil {
		return nil, models.NewParseFailure("model output is missing required report fields", raw, err)
	}

	return &rpt, nil
}
