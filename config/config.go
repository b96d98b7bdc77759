package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Fetcher   FetcherConfig
	Extractor ExtractorConfig
	LLM       LLMConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Branding  BrandingConfig
	Webhook   WebhookConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// FetcherConfig controls the store-page fetch.
type FetcherConfig struct {
	// Timeout is the deadline for the single GET request.
	Timeout time.Duration // default: 10s

	// MaxBodyBytes caps how much HTML is read from the response.
	MaxBodyBytes int64 // default: 10 MB
}

// ExtractorConfig controls snapshot extraction limits.
type ExtractorConfig struct {
	// MaxHeadings caps how many h1-h3 texts are kept, in document order.
	MaxHeadings int // default: 12

	// BodyCap is the maximum BodyText length in characters. Bounds prompt
	// size and therefore cost.
	BodyCap int // default: 4000

	// ImageStats toggles the <img> alt-text counting pass.
	ImageStats bool // default: true
}

// LLMConfig controls the generative-text provider.
type LLMConfig struct {
	// APIKey is the provider secret. Required; startup aborts without it.
	APIKey string

	// Model is the chat model name.
	Model string // default: "gpt-4o-mini"

	// BaseURL is the OpenAI-compatible API root.
	BaseURL string // default: "https://api.openai.com/v1"

	// Timeout bounds the model request. The upstream call is otherwise
	// unbounded, which is never acceptable here.
	Timeout time.Duration // default: 60s

	// StartupCheck probes the provider's model list at boot and logs the
	// outcome, so a bad key or blocked region fails loudly and early.
	StartupCheck bool // default: false
}

// AuthConfig controls API key authentication for the service itself.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid client keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 1

	// Burst is the maximum burst size per API key.
	Burst int // default: 3
}

// BrandingConfig carries the static presentation constants. It is loaded
// once at startup and never mutated; the renderer receives it explicitly.
type BrandingConfig struct {
	// AgencyName appears in document headers and boilerplate. Optional.
	AgencyName string

	// BookingURL is the call-to-action link in the promotional footer.
	BookingURL string

	// AffiliateLinks maps tool name (lowercased) → URL. Unknown tools fall
	// back to a search URL embedding the tool name.
	AffiliateLinks map[string]string
}

// WebhookConfig controls optional completion notifications.
type WebhookConfig struct {
	// URL receives audit.completed / audit.failed events. Empty disables.
	URL string

	// Secret signs the payload with HMAC-SHA256 when non-empty.
	Secret string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// defaultAffiliateLinks is the built-in tool → URL table. STORELENS_AFFILIATES
// entries ("Name=URL,Name=URL") are merged over it.
var defaultAffiliateLinks = map[string]string{
	"klaviyo":    "https://www.klaviyo.com/partners",
	"hotjar":     "https://www.hotjar.com/",
	"judge.me":   "https://judge.me/",
	"loox":       "https://loox.app/",
	"tidio":      "https://www.tidio.com/",
	"privy":      "https://www.privy.com/",
	"pagefly":    "https://pagefly.io/",
	"rebuy":      "https://www.rebuyengine.com/",
	"gorgias":    "https://www.gorgias.com/",
	"yotpo":      "https://www.yotpo.com/",
	"omnisend":   "https://www.omnisend.com/",
	"trustpulse": "https://trustpulse.com/",
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("STORELENS_HOST", "0.0.0.0"),
			Port: envIntOr("STORELENS_PORT", 8080),
			Mode: envOr("STORELENS_MODE", "release"),
		},
		Fetcher: FetcherConfig{
			Timeout:      envDurationOr("STORELENS_FETCH_TIMEOUT", 10*time.Second),
			MaxBodyBytes: int64(envIntOr("STORELENS_FETCH_MAX_BYTES", 10*1024*1024)),
		},
		Extractor: ExtractorConfig{
			MaxHeadings: envIntOr("STORELENS_MAX_HEADINGS", 12),
			BodyCap:     envIntOr("STORELENS_BODY_CAP", 4000),
			ImageStats:  envBoolOr("STORELENS_IMAGE_STATS", true),
		},
		LLM: LLMConfig{
			APIKey:       os.Getenv("STORELENS_LLM_API_KEY"),
			Model:        envOr("STORELENS_LLM_MODEL", "gpt-4o-mini"),
			BaseURL:      envOr("STORELENS_LLM_BASE_URL", "https://api.openai.com/v1"),
			Timeout:      envDurationOr("STORELENS_LLM_TIMEOUT", 60*time.Second),
			StartupCheck: envBoolOr("STORELENS_LLM_STARTUP_CHECK", false),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("STORELENS_AUTH_ENABLED", false),
			APIKeys: envSliceOr("STORELENS_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("STORELENS_RATE_RPS", 1.0),
			Burst:             envIntOr("STORELENS_RATE_BURST", 3),
		},
		Branding: BrandingConfig{
			AgencyName:     os.Getenv("STORELENS_AGENCY_NAME"),
			BookingURL:     os.Getenv("STORELENS_BOOKING_URL"),
			AffiliateLinks: envPairsOr("STORELENS_AFFILIATES", defaultAffiliateLinks),
		},
		Webhook: WebhookConfig{
			URL:    os.Getenv("STORELENS_WEBHOOK_URL"),
			Secret: os.Getenv("STORELENS_WEBHOOK_SECRET"),
		},
		Log: LogConfig{
			Level:  envOr("STORELENS_LOG_LEVEL", "info"),
			Format: envOr("STORELENS_LOG_FORMAT", "json"),
		},
	}
}

// envPairsOr parses "Name=URL,Name=URL" into a lowercased map, merged over
// the fallback table so built-in entries survive partial overrides.
func envPairsOr(key string, fallback map[string]string) map[string]string {
	result := make(map[string]string, len(fallback))
	for k, v := range fallback {
		result[strings.ToLower(k)] = v
	}
	if v := os.Getenv(key); v != "" {
		for _, pair := range strings.Split(v, ",") {
			name, url, ok := strings.Cut(strings.TrimSpace(pair), "=")
			if !ok || name == "" || url == "" {
				continue
			}
			result[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(url)
		}
	}
	return result
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
