package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/storelens/storelens/models"
)

func newAuthRig(keys []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(keys))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		value      string
		wantStatus int
	}{
		{"x-api-key accepted", "X-API-Key", "valid-key", http.StatusOK},
		{"bearer accepted", "Authorization", "Bearer valid-key", http.StatusOK},
		{"missing key", "", "", http.StatusUnauthorized},
		{"invalid x-api-key", "X-API-Key", "wrong-key", http.StatusUnauthorized},
		{"invalid bearer", "Authorization", "Bearer wrong-key", http.StatusUnauthorized},
		{"malformed authorization", "Authorization", "valid-key", http.StatusUnauthorized},
	}

	r := newAuthRig([]string{"valid-key", "another-key"})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus == http.StatusUnauthorized {
				assertErrorCode(t, w, models.ErrCodeUnauthorized)
			}
		})
	}
}

func TestAuth_NoKeysConfiguredIsOpen(t *testing.T) {
	r := newAuthRig(nil)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 when no keys are configured", w.Code)
	}
}

func assertErrorCode(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()
	var resp models.AuditResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.Success {
		t.Error("Success = true on a rejected request")
	}
	if resp.Error == nil || resp.Error.Code != want {
		t.Errorf("error = %+v, want code %q", resp.Error, want)
	}
}
