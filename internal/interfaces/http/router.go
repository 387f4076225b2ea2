// Package http assembles the gin route tree and the HTTP server serving it.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/lexatlas/precedent-intelligence/internal/interfaces/http/handlers"
	"github.com/lexatlas/precedent-intelligence/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handlers and infrastructure required to build
// the complete route tree.  Nil handlers leave their routes unregistered so
// partial deployments (ingest-only, analysis-only) stay possible.
type RouterConfig struct {
	AnalysisHandler  *handlers.AnalysisHandler
	CorpusHandler    *handlers.CorpusHandler
	PrecedentHandler *handlers.PrecedentHandler
	HealthHandler    *handlers.HealthHandler

	Logger    logging.Logger
	Metrics   *prometheus.AppMetrics
	Collector prometheus.MetricsCollector

	// Mode selects the gin mode: "debug", "release" or "test".
	Mode string
}

// NewRouter builds the route tree with logging, metrics and recovery
// middleware applied globally.
func NewRouter(cfg RouterConfig) *gin.Engine {
	switch cfg.Mode {
	case gin.DebugMode, gin.TestMode:
		gin.SetMode(cfg.Mode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(cfg.Logger, cfg.Metrics))
	r.Use(middleware.Recovery(cfg.Logger))

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Liveness)
		r.GET("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.Collector != nil {
		r.GET("/metrics", gin.WrapH(cfg.Collector.Handler()))
	}

	api := r.Group("/api/v1")
	{
		if cfg.AnalysisHandler != nil {
			api.POST("/analyses", cfg.AnalysisHandler.Analyze)
			api.GET("/statistics", cfg.AnalysisHandler.Statistics)
		}
		if cfg.CorpusHandler != nil {
			api.POST("/corpus", cfg.CorpusHandler.Ingest)
		}
		if cfg.PrecedentHandler != nil {
			api.GET("/precedents", cfg.PrecedentHandler.List)
			api.GET("/precedents/:case_id", cfg.PrecedentHandler.Get)
		}
	}

	return r
}
