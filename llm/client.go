// Package llm is a lightweight OpenAI-compatible chat client. It uses
// net/http directly — no third-party SDK needed.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/storelens/storelens/config"
	"github.com/storelens/storelens/models"
)

// Client sends one blocking chat request per audit. The embedded http.Client
// carries the configured timeout: the model call is never unbounded.
type Client struct {
	httpClient *http.Client
	cfg        config.LLMConfig
}

// New creates a Client from config.
func New(cfg config.LLMConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}
}

// Usage reports token consumption for one request.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// chatRequest is the OpenAI chat completion request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the minimal chat completion response we need.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// chatErrorResponse captures an API error from the provider.
type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// modelsResponse is the /models listing payload.
type modelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Complete sends the prompt and returns the raw model text. Failures are
// classified into typed provider errors so callers can branch on kind
// instead of string-matching messages.
func (c *Client) Complete(ctx context.Context, promptText string) (string, *Usage, error) {
	reqBody := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "user", Content: promptText},
		},
		Temperature: 0,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", nil, models.NewAuditError(models.ErrCodeInternal, "marshal chat request", err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", nil, models.NewAuditError(models.ErrCodeInternal, "create chat request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", nil, models.NewAuditError(models.ErrCodeProviderFailure, "model request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, models.NewAuditError(models.ErrCodeProviderFailure, "failed to read model response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", nil, classifyProviderError(resp.StatusCode, respBody)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", nil, models.NewAuditError(models.ErrCodeProviderFailure, "failed to parse model response envelope", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", nil, models.NewAuditError(models.ErrCodeProviderFailure, "model returned no choices", nil)
	}

	usage := &Usage{
		PromptTokens:     chatResp.Usage.PromptTokens,
		CompletionTokens: chatResp.Usage.CompletionTokens,
		TotalTokens:      chatResp.Usage.TotalTokens,
	}
	return chatResp.Choices[0].Message.Content, usage, nil
}

// ListModels fetches the provider's model list. Used as a startup probe: a
// bad key or blocked region fails here instead of on the first audit.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/models"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, models.NewAuditError(models.ErrCodeInternal, "create models request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, models.NewAuditError(models.ErrCodeProviderFailure, "model list request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, models.NewAuditError(models.ErrCodeProviderFailure, "failed to read model list", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, classifyProviderError(resp.StatusCode, respBody)
	}

	var listResp modelsResponse
	if err := json.Unmarshal(respBody, &listResp); err != nil {
		return nil, models.NewAuditError(models.ErrCodeProviderFailure, "failed to parse model list", err)
	}

	ids := make([]string, 0, len(listResp.Data))
	for _, m := range listResp.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// classifyProviderError maps provider HTTP status codes to typed errors,
// with operator-friendly hints for the two most common misconfigurations:
// an invalid key (401/403) and a region-blocked account (400).
func classifyProviderError(statusCode int, body []byte) *models.AuditError {
	var errResp chatErrorResponse
	msg := "provider API error"
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		msg = errResp.Error.Message
	}

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return models.NewAuditError(models.ErrCodeProviderAuth,
			fmt.Sprintf("%s (the API key is likely invalid)", msg), nil)
	case statusCode == http.StatusTooManyRequests:
		return models.NewAuditError(models.ErrCodeProviderRate, msg, nil)
	case statusCode == http.StatusBadRequest && strings.Contains(strings.ToLower(msg), "location is not supported"):
		return models.NewAuditError(models.ErrCodeProviderFailure,
			fmt.Sprintf("%s (the provider does not serve this region)", msg), nil)
	default:
		return models.NewAuditError(models.ErrCodeProviderFailure,
			fmt.Sprintf("provider API returned %d: %s", statusCode, msg), nil)
	}
}
