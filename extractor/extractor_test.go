package extractor

import (
	"strings"
	"testing"

	"github.com/storelens/storelens/config"
	"github.com/storelens/storelens/models"
)

func testConfig() config.ExtractorConfig {
	return config.ExtractorConfig{
		MaxHeadings: 12,
		BodyCap:     4000,
		ImageStats:  true,
	}
}

const sampleStore = `<!DOCTYPE html>
<html>
<head>
<title>  Acme   Candles  </title>
<meta name="description" content="Hand-poured soy candles.">
</head>
<body>
<header><h1>Acme Candles</h1></header>
<main>
<h2>Bestsellers</h2>
<p>Our hand-poured soy candles are made in small batches with natural wicks
and premium fragrance oils. Free shipping on orders over $50.</p>
<h3>Lavender Dream</h3>
<p>A calming blend of lavender and vanilla, perfect for winding down.</p>
<img src="/candle1.jpg" alt="Lavender candle">
<img src="/candle2.jpg" alt="">
<img src="/candle3.jpg">
</main>
<footer><h2>Contact</h2></footer>
</body>
</html>`

func TestExtract_Fields(t *testing.T) {
	e := New(testConfig())
	snap := e.Extract(sampleStore, "https://acme.example")

	if snap.Title != "Acme Candles" {
		t.Errorf("Title = %q, want %q", snap.Title, "Acme Candles")
	}
	if snap.MetaDescription != "Hand-poured soy candles." {
		t.Errorf("MetaDescription = %q", snap.MetaDescription)
	}
	wantHeadings := []string{"Acme Candles", "Bestsellers", "Lavender Dream", "Contact"}
	if len(snap.Headings) != len(wantHeadings) {
		t.Fatalf("Headings = %v, want %v", snap.Headings, wantHeadings)
	}
	for i, h := range wantHeadings {
		if snap.Headings[i] != h {
			t.Errorf("Headings[%d] = %q, want %q", i, snap.Headings[i], h)
		}
	}
	if !strings.Contains(snap.BodyText, "soy candles") {
		t.Errorf("BodyText missing main content: %q", snap.BodyText)
	}
}

func TestExtract_ImageAltStats(t *testing.T) {
	e := New(testConfig())
	snap := e.Extract(sampleStore, "https://acme.example")

	if snap.ImageAltStats == nil {
		t.Fatal("ImageAltStats is nil")
	}
	if snap.ImageAltStats.Total != 3 {
		t.Errorf("Total = %d, want 3", snap.ImageAltStats.Total)
	}
	if snap.ImageAltStats.MissingAlt != 2 {
		t.Errorf("MissingAlt = %d, want 2 (empty alt counts as missing)", snap.ImageAltStats.MissingAlt)
	}
}

func TestExtract_ImageStatsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.ImageStats = false
	snap := New(cfg).Extract(sampleStore, "https://acme.example")

	if snap.ImageAltStats != nil {
		t.Errorf("ImageAltStats = %+v, want nil when disabled", snap.ImageAltStats)
	}
}

func TestExtract_Fallbacks(t *testing.T) {
	e := New(testConfig())

	tests := []struct {
		name string
		html string
	}{
		{"empty input", ""},
		{"no head", "<body><p>just text</p></body>"},
		{"not html at all", "plain text, no markup whatsoever"},
		{"broken markup", "<html><head><title</head><div><<<"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := e.Extract(tt.html, "https://acme.example")
			if snap.Title == "" {
				t.Error("Title must never be empty")
			}
			if snap.MetaDescription == "" {
				t.Error("MetaDescription must never be empty")
			}
			if snap.Headings == nil {
				t.Error("Headings must never be nil")
			}
		})
	}
}

func TestExtract_MissingTitleUsesFallback(t *testing.T) {
	e := New(testConfig())
	snap := e.Extract("<html><head></head><body><p>content</p></body></html>", "https://acme.example")

	if snap.Title != models.FallbackTitle {
		t.Errorf("Title = %q, want %q", snap.Title, models.FallbackTitle)
	}
	if snap.MetaDescription != models.FallbackMetaDescription {
		t.Errorf("MetaDescription = %q, want %q", snap.MetaDescription, models.FallbackMetaDescription)
	}
}

func TestExtract_BodyCap(t *testing.T) {
	cfg := testConfig()
	cfg.BodyCap = 100

	var b strings.Builder
	b.WriteString("<html><body><main><p>")
	for i := 0; i < 500; i++ {
		b.WriteString("lots of repeated store copy here ")
	}
	b.WriteString("</p></main></body></html>")

	snap := New(cfg).Extract(b.String(), "https://acme.example")
	if got := len([]rune(snap.BodyText)); got > 100 {
		t.Errorf("len(BodyText) = %d, want <= 100", got)
	}
}

func TestExtract_HeadingCap(t *testing.T) {
	cfg := testConfig()
	cfg.MaxHeadings = 3

	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 10; i++ {
		b.WriteString("<h2>Heading</h2>")
	}
	b.WriteString("</body></html>")

	snap := New(cfg).Extract(b.String(), "https://acme.example")
	if len(snap.Headings) != 3 {
		t.Errorf("len(Headings) = %d, want 3", len(snap.Headings))
	}
}

func TestVisibleText_SkipsScripts(t *testing.T) {
	html := `<html><body><script>var x = 1;</script><p>visible</p><style>.a{}</style></body></html>`
	got := visibleText(html)
	if got != "visible" {
		t.Errorf("visibleText = %q, want %q", got, "visible")
	}
}
