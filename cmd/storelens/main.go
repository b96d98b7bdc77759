package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/storelens/storelens/api"
	"github.com/storelens/storelens/api/handler"
	"github.com/storelens/storelens/config"
	"github.com/storelens/storelens/extractor"
	"github.com/storelens/storelens/fetcher"
	"github.com/storelens/storelens/llm"
	"github.com/storelens/storelens/render"
	"github.com/storelens/storelens/webhook"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("storelens starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"model", cfg.LLM.Model,
	)

	// ── 3. Required secret check ────────────────────────────────────
	// Without the provider key no audit can run, so fail at startup
	// rather than on the first request.
	if cfg.LLM.APIKey == "" {
		slog.Error("STORELENS_LLM_API_KEY is not set")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "storelens needs an API key for its text-generation provider.")
		fmt.Fprintln(os.Stderr, "Set it and restart:")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "    export STORELENS_LLM_API_KEY=sk-...")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Optional: STORELENS_LLM_MODEL, STORELENS_LLM_BASE_URL for")
		fmt.Fprintln(os.Stderr, "any OpenAI-compatible endpoint.")
		os.Exit(1)
	}

	// ── 4. Initialise pipeline components ───────────────────────────
	llmClient := llm.New(cfg.LLM)

	// Optional provider probe: surfaces a bad key or blocked region now
	// instead of on the first audit.
	if cfg.LLM.StartupCheck {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		ids, err := llmClient.ListModels(ctx)
		cancel()
		if err != nil {
			slog.Error("provider connectivity check failed", "error", err)
			os.Exit(1)
		}
		slog.Info("provider connectivity check passed", "models", len(ids))
	}

	pipeline := &handler.Pipeline{
		Fetcher:   fetcher.New(cfg.Fetcher),
		Extractor: extractor.New(cfg.Extractor),
		LLM:       llmClient,
		Renderer:  render.New(cfg.Branding),
		Notifier:  webhook.New(cfg.Webhook),
	}

	// ── 5. Setup router ─────────────────────────────────────────────
	startTime := time.Now()
	router := api.NewRouter(pipeline, cfg, startTime)

	// ── 6. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 7. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight audits 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("storelens stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
