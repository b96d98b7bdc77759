package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storelens/storelens/api/handler"
	"github.com/storelens/storelens/api/middleware"
	"github.com/storelens/storelens/config"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(p *handler.Pipeline, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(cfg.LLM.Model, startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Audit (interactive JSON view).
	protected.POST("/audit", handler.Audit(p))

	// Export (DOCX / PDF document).
	protected.POST("/audit/export", handler.Export(p))

	return r
}
