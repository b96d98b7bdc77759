package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/storelens/storelens/config"
	"github.com/storelens/storelens/models"
)

func newRateLimitRig(cfg config.RateLimitConfig, keys []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if len(keys) > 0 {
		r.Use(Auth(keys))
	}
	r.Use(RateLimit(cfg))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRateLimit_BurstExhaustion(t *testing.T) {
	// Refill is far too slow to matter within the test.
	r := newRateLimitRig(config.RateLimitConfig{RequestsPerSecond: 0.01, Burst: 2}, nil)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("request past burst: status = %d, want 429", w.Code)
	}
	assertErrorCode(t, w, models.ErrCodeRateLimited)
}

func TestRateLimit_PerKeyBuckets(t *testing.T) {
	r := newRateLimitRig(
		config.RateLimitConfig{RequestsPerSecond: 0.01, Burst: 1},
		[]string{"key-a", "key-b"},
	)

	send := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-API-Key", key)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	// Exhaust key-a's bucket.
	if w := send("key-a"); w.Code != http.StatusOK {
		t.Fatalf("key-a first request: status = %d, want 200", w.Code)
	}
	if w := send("key-a"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("key-a second request: status = %d, want 429", w.Code)
	}

	// key-b has its own bucket and is unaffected.
	if w := send("key-b"); w.Code != http.StatusOK {
		t.Errorf("key-b request: status = %d, want 200", w.Code)
	}
}
