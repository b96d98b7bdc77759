package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storelens/storelens/extractor"
	"github.com/storelens/storelens/fetcher"
	"github.com/storelens/storelens/llm"
	"github.com/storelens/storelens/models"
	"github.com/storelens/storelens/prompt"
	"github.com/storelens/storelens/render"
	"github.com/storelens/storelens/report"
	"github.com/storelens/storelens/webhook"
)

// Pipeline wires the audit stages together. One Run is one audit: strictly
// sequential, no retries, any stage failure is terminal for the invocation.
type Pipeline struct {
	Fetcher   *fetcher.Fetcher
	Extractor *extractor.Extractor
	LLM       *llm.Client
	Renderer  *render.Renderer
	Notifier  *webhook.Notifier
}

// Result carries everything a successful Run produced.
type Result struct {
	View     *models.ReportView
	Snapshot *models.PageSnapshot
	Report   *models.AuditReport
	Timing   models.TimingInfo
}

// Run executes fetch → extract → prompt → model → parse → view.
func (p *Pipeline) Run(ctx context.Context, req *models.AuditRequest) (*Result, error) {
	totalStart := time.Now()
	timing := models.TimingInfo{}

	fail := func(err error) (*Result, error) {
		timing.TotalMs = time.Since(totalStart).Milliseconds()
		if auditErr, ok := err.(*models.AuditError); ok {
			p.Notifier.NotifyAsync(webhook.EventAuditFailed, req.URL, auditErr.ToDetail())
		}
		return &Result{Timing: timing}, err
	}

	// ── 1. Fetch ────────────────────────────────────────────────────
	fetchStart := time.Now()
	fetched, err := p.Fetcher.Fetch(ctx, req.URL)
	timing.FetchMs = time.Since(fetchStart).Milliseconds()
	if err != nil {
		return fail(err)
	}

	// ── 2. Extract ──────────────────────────────────────────────────
	extractStart := time.Now()
	snapshot := p.Extractor.Extract(fetched.HTML, fetched.URL)
	timing.ExtractMs = time.Since(extractStart).Milliseconds()

	// ── 3. Prompt + model ───────────────────────────────────────────
	promptText := prompt.Build(snapshot, req.Persona)

	modelStart := time.Now()
	rawText, usage, err := p.LLM.Complete(ctx, promptText)
	timing.ModelMs = time.Since(modelStart).Milliseconds()
	if err != nil {
		return fail(err)
	}
	if usage != nil {
		slog.Info("model request complete",
			"url", fetched.URL,
			"prompt_tokens", usage.PromptTokens,
			"completion_tokens", usage.CompletionTokens,
		)
	}

	// ── 4. Parse ────────────────────────────────────────────────────
	parsed, err := report.Parse(rawText)
	if err != nil {
		return fail(err)
	}

	// ── 5. Render view ──────────────────────────────────────────────
	renderStart := time.Now()
	view, err := p.Renderer.BuildView(parsed, fetched.URL, time.Now())
	timing.RenderMs = time.Since(renderStart).Milliseconds()
	if err != nil {
		return fail(err)
	}

	timing.TotalMs = time.Since(totalStart).Milliseconds()
	p.Notifier.NotifyAsync(webhook.EventAuditCompleted, fetched.URL, view)

	return &Result{
		View:     view,
		Snapshot: snapshot,
		Report:   parsed,
		Timing:   timing,
	}, nil
}

// respondError maps an AuditError to the correct HTTP status code and writes
// a structured JSON error response.
func respondError(c *gin.Context, err error, timing models.TimingInfo) {
	auditErr, ok := err.(*models.AuditError)
	if !ok {
		auditErr = models.NewAuditError(models.ErrCodeInternal, err.Error(), err)
	}

	c.JSON(mapErrorToStatus(auditErr), models.AuditResponse{
		Success: false,
		Error:   auditErr.ToDetail(),
		Timing:  timing,
	})
}

// mapErrorToStatus translates error codes to HTTP status codes. Provider
// auth failures are a server misconfiguration, not a client one, so they
// surface as 502 rather than 401.
func mapErrorToStatus(e *models.AuditError) int {
	switch e.Code {
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	case models.ErrCodeRateLimited, models.ErrCodeProviderRate:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeFetchStatus, models.ErrCodeFetchNetwork,
		models.ErrCodeProviderFailure, models.ErrCodeProviderAuth,
		models.ErrCodeParseFailure:
		return http.StatusBadGateway // 502
	default:
		return http.StatusInternalServerError // 500
	}
}
