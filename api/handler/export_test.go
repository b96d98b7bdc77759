package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/storelens/storelens/models"
	"github.com/storelens/storelens/render"
)

func doExport(t *testing.T, p *Pipeline, url, format string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/audit/export", Export(p))

	body, _ := json.Marshal(models.ExportRequest{URL: url, Format: format})
	req := httptest.NewRequest(http.MethodPost, "/audit/export", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestExport_DOCX(t *testing.T) {
	var llmCalls atomic.Int64
	p, storeURL, cleanup := newTestPipeline(t, http.StatusOK, &llmCalls)
	defer cleanup()

	w := doExport(t, p, storeURL, models.FormatDOCX)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != render.MIMEDocx {
		t.Errorf("Content-Type = %q, want %q", ct, render.MIMEDocx)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, ".docx") {
		t.Errorf("Content-Disposition = %q, want a .docx filename", cd)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Error("body is not a zip archive")
	}
}

func TestExport_PDF(t *testing.T) {
	var llmCalls atomic.Int64
	p, storeURL, cleanup := newTestPipeline(t, http.StatusOK, &llmCalls)
	defer cleanup()

	w := doExport(t, p, storeURL, models.FormatPDF)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != render.MIMEPdf {
		t.Errorf("Content-Type = %q, want %q", ct, render.MIMEPdf)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Error("body is not a PDF")
	}
}

func TestExport_FetchFailure(t *testing.T) {
	var llmCalls atomic.Int64
	p, storeURL, cleanup := newTestPipeline(t, http.StatusForbidden, &llmCalls)
	defer cleanup()

	w := doExport(t, p, storeURL, models.FormatDOCX)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	if llmCalls.Load() != 0 {
		t.Errorf("llmCalls = %d, want 0", llmCalls.Load())
	}
}
