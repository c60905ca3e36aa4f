package app

import (
	"context"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lukawang/emoscope-go/internal/buildinfo"
	"github.com/lukawang/emoscope-go/internal/logger"
	"github.com/lukawang/emoscope-go/internal/metrics"
	"github.com/lukawang/emoscope-go/internal/ratelimit"
)

// readinessCheckTimeout bounds the dependency probes behind /ready.
const readinessCheckTimeout = 3 * time.Second

// RouterConfig carries everything the HTTP surface needs.
type RouterConfig struct {
	APIKey          string
	MetricsUsername string
	MetricsPassword string
	SentryEnabled   bool

	Handler  *Handler
	Limiter  *ratelimit.PerKeyLimiter
	Registry *prometheus.Registry

	// ReadyCheck probes the storage dependency for /ready.
	ReadyCheck func(ctx context.Context) error

	Log     *logger.Logger
	Metrics *metrics.Metrics
}

// NewRouter assembles the Gin engine: recovery, security headers, request
// logging, then the routed endpoints with their per-route middleware.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.SentryEnabled {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(cfg.Log))

	router.GET("/", serviceInfo)
	router.GET("/healthz", livenessCheck)
	router.HEAD("/healthz", livenessCheck)
	router.GET("/ready", readinessCheck(cfg.ReadyCheck, cfg.Log))
	router.HEAD("/ready", readinessCheck(cfg.ReadyCheck, cfg.Log))

	router.POST("/analyze",
		apiKeyMiddleware(cfg.APIKey),
		rateLimitMiddleware(cfg.Limiter, cfg.Metrics),
		cfg.Handler.Analyze)

	router.GET("/metrics",
		metricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword),
		gin.WrapH(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))

	return router
}

func serviceInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "emoscope",
		"version": buildinfo.Version,
	})
}

func livenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

func readinessCheck(probe func(ctx context.Context) error, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessCheckTimeout)
		defer cancel()

		if err := probe(ctx); err != nil {
			log.WithError(err).Warn("Readiness check failed: database unavailable")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": "database unavailable",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "ready",
			"database": "connected",
		})
	}
}
