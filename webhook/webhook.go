// Package webhook delivers audit lifecycle notifications to a configured
// endpoint. Delivery retries are a webhook concern only — the audit
// pipeline itself never retries.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/storelens/storelens/config"
)

// Event types delivered to the webhook endpoint.
const (
	EventAuditCompleted = "audit.completed"
	EventAuditFailed    = "audit.failed"
)

// Event is the payload sent to the webhook endpoint.
type Event struct {
	Type      string      `json:"type"`
	URL       string      `json:"url"` // the audited store URL
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Notifier sends events to the configured endpoint. A Notifier with an
// empty URL is valid and silently drops all events.
type Notifier struct {
	endpoint string
	secret   string
}

// New creates a Notifier from config.
func New(cfg config.WebhookConfig) *Notifier {
	return &Notifier{endpoint: cfg.URL, secret: cfg.Secret}
}

// Deliver sends one event synchronously. The request body is signed with
// HMAC-SHA256 when a secret is configured.
// Header: X-Storelens-Signature: sha256=<hex>
func (n *Notifier) Deliver(ctx context.Context, event *Event) error {
	if n.endpoint == "" {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("webhook: marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Storelens-Webhook/1.0")

	if n.secret != "" {
		mac := hmac.New(sha256.New, []byte(n.secret))
		mac.Write(body)
		sig := hex.EncodeToString(mac.Sum(nil))
		req.Header.Set("X-Storelens-Signature", "sha256="+sig)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: deliver: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook: endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// NotifyAsync sends an event in the background with staged retries
// (1s, 5s, 30s). Failures after the last attempt are logged and dropped.
func (n *Notifier) NotifyAsync(eventType, auditURL string, data interface{}) {
	if n.endpoint == "" {
		return
	}

	event := &Event{
		Type:      eventType,
		URL:       auditURL,
		Timestamp: time.Now().Unix(),
		Data:      data,
	}

	go func() {
		delays := []time.Duration{0, 1 * time.Second, 5 * time.Second, 30 * time.Second}
		for attempt, delay := range delays {
			if delay > 0 {
				time.Sleep(delay)
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err := n.Deliver(ctx, event)
			cancel()
			if err == nil {
				slog.Info("webhook delivered",
					"event", event.Type,
					"url", event.URL,
					"attempt", attempt+1,
				)
				return
			}
			slog.Warn("webhook delivery failed",
				"event", event.Type,
				"url", event.URL,
				"attempt", attempt+1,
				"error", err,
			)
		}
	}()
}
