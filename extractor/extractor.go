// Package extractor turns raw HTML into a PageSnapshot. It is a pure
// transformation with no error channel: every field has a defined fallback,
// so a garbage page still yields a usable snapshot.
package extractor

import (
	nurl "net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	readability "github.com/go-shiori/go-readability"

	"github.com/storelens/storelens/config"
	"github.com/storelens/storelens/models"
)

// minContentLength is the minimum readability output length (in characters)
// to be considered valid. Below it we assume the algorithm failed to locate
// the main content and fall back to visible-text tokenization.
const minContentLength = 50

// headingMatcher selects h1-h3 in document order.
var headingMatcher = cascadia.MustCompile("h1, h2, h3")

// Extractor builds snapshots. The Markdown converter is created once and
// reused across requests (goroutine-safe).
type Extractor struct {
	cfg         config.ExtractorConfig
	mdConverter *converter.Converter
}

// New creates an Extractor from config.
func New(cfg config.ExtractorConfig) *Extractor {
	return &Extractor{
		cfg: cfg,
		mdConverter: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
	}
}

// Extract parses rawHTML into a PageSnapshot. It never fails: on a page
// goquery cannot parse at all, the snapshot carries the fallback literals
// and an empty body.
func (e *Extractor) Extract(rawHTML, sourceURL string) *models.PageSnapshot {
	snapshot := &models.PageSnapshot{
		URL:             sourceURL,
		Title:           models.FallbackTitle,
		MetaDescription: models.FallbackMetaDescription,
		Headings:        []string{},
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		snapshot.BodyText = truncate(visibleText(rawHTML), e.cfg.BodyCap)
		return snapshot
	}

	if title := collapse(doc.Find("title").First().Text()); title != "" {
		snapshot.Title = title
	}
	if desc := metaDescription(doc); desc != "" {
		snapshot.MetaDescription = desc
	}
	snapshot.Headings = e.headings(doc)
	snapshot.BodyText = truncate(e.bodyText(rawHTML, sourceURL), e.cfg.BodyCap)

	if e.cfg.ImageStats {
		snapshot.ImageAltStats = imageAltStats(doc)
	}

	return snapshot
}

// metaDescription prefers the standard meta description, then og:description.
func metaDescription(doc *goquery.Document) string {
	if content, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		if c := collapse(content); c != "" {
			return c
		}
	}
	if content, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok {
		return collapse(content)
	}
	return ""
}

// headings collects h1-h3 texts in document order, capped at MaxHeadings.
func (e *Extractor) headings(doc *goquery.Document) []string {
	headings := []string{}
	doc.FindMatcher(headingMatcher).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if text := collapse(s.Text()); text != "" {
			headings = append(headings, text)
		}
		return len(headings) < e.cfg.MaxHeadings
	})
	return headings
}

// bodyText extracts the main page content as Markdown.
//
// Stage 1: readability isolates the main content, stripping nav, footer and
// ads. Stage 2: the clean HTML is converted to Markdown so the model sees
// document structure instead of tag soup.
//
// Fallbacks keep the stage error-free: if readability chokes or finds less
// than minContentLength characters, the whole page's visible text is used.
func (e *Extractor) bodyText(rawHTML, sourceURL string) string {
	parsedURL, err := nurl.Parse(sourceURL)
	if err != nil {
		return visibleText(rawHTML)
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), parsedURL)
	if err != nil || len(strings.TrimSpace(article.TextContent)) < minContentLength {
		return visibleText(rawHTML)
	}

	markdown, err := e.mdConverter.ConvertString(article.Content, converter.WithDomain(sourceURL))
	if err != nil {
		return collapse(article.TextContent)
	}
	return strings.TrimSpace(markdown)
}

// imageAltStats counts <img> elements and those missing or empty alt text.
func imageAltStats(doc *goquery.Document) *models.ImageAltStats {
	stats := &models.ImageAltStats{}
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		stats.Total++
		if alt, ok := s.Attr("alt"); !ok || strings.TrimSpace(alt) == "" {
			stats.MissingAlt++
		}
	})
	return stats
}

// collapse trims and squeezes runs of whitespace into single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts s to at most cap characters (runes, to avoid splitting
// multi-byte text mid-character).
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
