package render

import (
	"net/url"
	"strings"
)

// fallbackSearchURL is the pattern used when a suggested tool has no entry
// in the affiliate table: a search URL embedding the tool name.
const fallbackSearchURL = "https://www.google.com/search?q="

// ResolveTool maps a tool name to a URL through the affiliate table
// (case-insensitive). Unknown names get the fallback search URL so every
// suggested tool is always clickable.
func ResolveTool(name string, affiliates map[string]string) string {
	if name == "" {
		return ""
	}
	if link, ok := affiliates[strings.ToLower(name)]; ok {
		return link
	}
	return fallbackSearchURL + url.QueryEscape(name+" ecommerce tool")
}
