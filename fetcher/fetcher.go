// Package fetcher performs the single outbound GET for a store page.
// It sends a browser-like header set and a Chrome TLS fingerprint (utls),
// since storefronts routinely reject default Go clients.
package fetcher

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	tls2 "github.com/refraction-networking/utls"

	"github.com/storelens/storelens/config"
	"github.com/storelens/storelens/models"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// Result holds the raw HTML and response metadata from a fetch.
type Result struct {
	// URL is the normalized request URL.
	URL string

	// FinalURL is the URL after redirects.
	FinalURL string

	StatusCode int
	HTML       string
}

// Fetcher issues one GET per audit. No retries, no robots.txt, redirects
// are left to the HTTP client's defaults.
type Fetcher struct {
	client       *http.Client
	maxBodyBytes int64
}

// New creates a Fetcher from config.
func New(cfg config.FetcherConfig) *Fetcher {
	transport := &http.Transport{
		DialTLSContext: dialTLSChrome,
	}
	return &Fetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		maxBodyBytes: cfg.MaxBodyBytes,
	}
}

// Normalize prepends https:// when the URL lacks a scheme and validates the
// result. Operators paste bare domains like "example.com" constantly.
func Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", models.NewAuditError(models.ErrCodeInvalidInput, "url is required", nil)
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", models.NewAuditError(models.ErrCodeInvalidInput, "invalid url: "+raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", models.NewAuditError(models.ErrCodeInvalidInput, "unsupported url scheme: "+u.Scheme, nil)
	}
	return u.String(), nil
}

// Fetch retrieves the store page. A non-200 final status is a
// FETCH_HTTP_STATUS error with no HTML body; transport failures
// (DNS, timeout, refused connection) are FETCH_NETWORK.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	target, err := Normalize(rawURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, models.NewAuditError(models.ErrCodeInvalidInput, "invalid url: "+target, err)
	}
	req.Header.Set("User-Agent", chromeUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, models.NewAuditError(models.ErrCodeFetchNetwork,
			"could not reach "+target+" (the site may be unreachable or protected)", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, models.NewFetchStatusError(resp.StatusCode, target)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return nil, models.NewAuditError(models.ErrCodeFetchNetwork, "failed reading response from "+target, err)
	}

	return &Result{
		URL:        target,
		FinalURL:   resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}

// dialTLSChrome establishes a TLS connection using a Chrome fingerprint via utls.
func dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	rawConn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	host, _, _ := net.SplitHostPort(addr)
	tlsConn := tls2.UClient(rawConn, &tls2.Config{
		ServerName: host,
	}, tls2.HelloChrome_Auto)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		rawConn.Close()
		return nil, err
	}
	return tlsConn, nil
}
