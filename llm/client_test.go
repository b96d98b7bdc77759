package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/storelens/storelens/config"
	"github.com/storelens/storelens/models"
)

func testClient(baseURL string) *Client {
	return New(config.LLMConfig{
		APIKey:  "test-key",
		Model:   "test-model",
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	})
}

func chatStub(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestComplete_Success(t *testing.T) {
	srv := chatStub(t, http.StatusOK, `{
		"choices": [{"message": {"content": "{\"score\": 7}"}}],
		"usage": {"prompt_tokens": 120, "completion_tokens": 80, "total_tokens": 200}
	}`)
	defer srv.Close()

	text, usage, err := testClient(srv.URL).Complete(context.Background(), "audit this")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if text != `{"score": 7}` {
		t.Errorf("text = %q", text)
	}
	if usage.TotalTokens != 200 {
		t.Errorf("TotalTokens = %d, want 200", usage.TotalTokens)
	}
}

func TestComplete_SendsPromptAndModel(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"choices": [{"message": {"content": "ok"}}]}`))
	}))
	defer srv.Close()

	if _, _, err := testClient(srv.URL).Complete(context.Background(), "audit this"); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got.Model != "test-model" {
		t.Errorf("model = %q", got.Model)
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "audit this" {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestComplete_ErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
	}{
		{
			"unauthorized",
			http.StatusUnauthorized,
			`{"error": {"message": "Incorrect API key provided"}}`,
			models.ErrCodeProviderAuth,
		},
		{
			"forbidden",
			http.StatusForbidden,
			`{"error": {"message": "Permission denied"}}`,
			models.ErrCodeProviderAuth,
		},
		{
			"rate limited",
			http.StatusTooManyRequests,
			`{"error": {"message": "Rate limit reached"}}`,
			models.ErrCodeProviderRate,
		},
		{
			"region blocked",
			http.StatusBadRequest,
			`{"error": {"message": "User location is not supported for the API use"}}`,
			models.ErrCodeProviderFailure,
		},
		{
			"server error",
			http.StatusInternalServerError,
			`{"error": {"message": "The server had an error"}}`,
			models.ErrCodeProviderFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := chatStub(t, tt.status, tt.body)
			defer srv.Close()

			_, _, err := testClient(srv.URL).Complete(context.Background(), "audit this")
			if err == nil {
				t.Fatal("expected error")
			}
			var auditErr *models.AuditError
			if !errors.As(err, &auditErr) {
				t.Fatalf("expected *models.AuditError, got %T", err)
			}
			if auditErr.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", auditErr.Code, tt.wantCode)
			}
		})
	}
}

func TestComplete_RegionHint(t *testing.T) {
	srv := chatStub(t, http.StatusBadRequest,
		`{"error": {"message": "User location is not supported for the API use"}}`)
	defer srv.Close()

	_, _, err := testClient(srv.URL).Complete(context.Background(), "audit this")
	if err == nil {
		t.Fatal("expected error")
	}
	var auditErr *models.AuditError
	if !errors.As(err, &auditErr) {
		t.Fatalf("expected *models.AuditError, got %T", err)
	}
	if want := "does not serve this region"; !strings.Contains(auditErr.Message, want) {
		t.Errorf("Message = %q, want it to contain %q", auditErr.Message, want)
	}
}

func TestComplete_NoChoices(t *testing.T) {
	srv := chatStub(t, http.StatusOK, `{"choices": []}`)
	defer srv.Close()

	_, _, err := testClient(srv.URL).Complete(context.Background(), "audit this")
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"data": [{"id": "gpt-4o-mini"}, {"id": "gpt-4o"}]}`))
	}))
	defer srv.Close()

	ids, err := testClient(srv.URL).ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "gpt-4o-mini" {
		t.Errorf("ids = %v", ids)
	}
}
