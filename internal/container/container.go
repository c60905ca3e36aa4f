// Package container is the composition root: it builds every component
// from configuration and owns the application lifecycle.
package container

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/lukawang/emoscope-go/internal/analyze"
	"github.com/lukawang/emoscope-go/internal/app"
	"github.com/lukawang/emoscope-go/internal/buildinfo"
	"github.com/lukawang/emoscope-go/internal/config"
	"github.com/lukawang/emoscope-go/internal/embedding"
	"github.com/lukawang/emoscope-go/internal/inference"
	"github.com/lukawang/emoscope-go/internal/keyphrase"
	"github.com/lukawang/emoscope-go/internal/lexicon"
	"github.com/lukawang/emoscope-go/internal/logger"
	"github.com/lukawang/emoscope-go/internal/metrics"
	"github.com/lukawang/emoscope-go/internal/query"
	"github.com/lukawang/emoscope-go/internal/ratelimit"
	"github.com/lukawang/emoscope-go/internal/scholar"
	"github.com/lukawang/emoscope-go/internal/sentry"
	"github.com/lukawang/emoscope-go/internal/storage"
	"github.com/lukawang/emoscope-go/internal/synonym"
)

// Container holds every initialized component.
type Container struct {
	cfg           *config.Config
	log           *logger.Logger
	db            *storage.DB
	registry      *prometheus.Registry
	metrics       *metrics.Metrics
	analyzer      *analyze.Analyzer
	clientLimiter *ratelimit.PerKeyLimiter
	sentryEnabled bool
}

// Initialize builds the full dependency graph from configuration.
func Initialize(ctx context.Context, cfg *config.Config) (*Container, error) {
	log := logger.New(cfg.LogLevel).WithField("service", "emoscope")
	if host, err := os.Hostname(); err == nil && host != "" {
		log = log.WithField("instance_id", host)
	}

	// Package-level slog calls (keyphrase providers) go through the same
	// handler as the wrapper.
	slog.SetDefault(log.Logger)

	log.Info("Initializing application...")

	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
		Release:     buildinfo.Version,
	}); err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	if sentry.IsEnabled() {
		log.WithField("environment", cfg.Environment).Info("Sentry error reporting enabled")
	}

	db, err := storage.New(cfg.SQLitePath(), cfg.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	log.WithField("path", cfg.SQLitePath()).WithField("cache_ttl", cfg.CacheTTL).Info("Database connected")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)
	m := metrics.New(registry)

	classifier := inference.New(cfg.HFAPIKey, cfg.HFBaseURL, cfg.InferenceRequestsPerMinute, log, m)

	extractor, err := keyphrase.NewExtractor(ctx, cfg.GeminiAPIKey, cfg.GroqAPIKey)
	if err != nil {
		return nil, fmt.Errorf("keyphrase extractor: %w", err)
	}
	if cfg.HasFallbackProvider() {
		log.Info("Keyphrase extraction configured with Groq fallback")
	}

	embedder := embedding.NewClient(cfg.GeminiAPIKey, cfg.EmbeddingRequestsPerMinute)
	dictionary := lexicon.NewClient(cfg.LexiconBaseURL)
	resolver := synonym.NewResolver(dictionary, embedder, db, log, m)
	formulator := query.NewFormulator(resolver, log)

	fetcher := scholar.NewClient(cfg.ScholarBaseURL, cfg.ScholarAPIKey, db, log, m)

	analyzer := analyze.New(extractor, classifier, formulator, fetcher, log)

	clientLimiter := ratelimit.NewPerKeyLimiter(ratelimit.PerKeyLimiterConfig{
		MaxTokens:  cfg.ClientRateLimitBurst,
		RefillRate: cfg.ClientRateLimitRefillPerSec,
	})

	log.Info("Initialization complete")

	return &Container{
		cfg:           cfg,
		log:           log,
		db:            db,
		registry:      registry,
		metrics:       m,
		analyzer:      analyzer,
		clientLimiter: clientLimiter,
		sentryEnabled: sentry.IsEnabled(),
	}, nil
}

// Router assembles the HTTP surface from the container's components.
func (c *Container) Router() *app.RouterConfig {
	return &app.RouterConfig{
		APIKey:          c.cfg.APIKey,
		MetricsUsername: c.cfg.MetricsUsername,
		MetricsPassword: c.cfg.MetricsPassword,
		SentryEnabled:   c.sentryEnabled,
		Handler:         app.NewHandler(c.analyzer, c.log, c.metrics),
		Limiter:         c.clientLimiter,
		Registry:        c.registry,
		ReadyCheck:      c.db.Ready,
		Log:             c.log,
		Metrics:         c.metrics,
	}
}

// Close releases the container's resources.
func (c *Container) Close() {
	if err := c.db.Close(); err != nil {
		c.log.WithError(err).WithField("component", "database").Error("Component close error")
	}
	c.clientLimiter.Stop()
}
