package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Analyze pipeline metrics
	AnalyzeRequestsTotal   *prometheus.CounterVec
	AnalyzeDurationSeconds prometheus.Histogram

	// Classifier metrics (Hugging Face inference)
	ClassifierRequestsTotal   *prometheus.CounterVec
	ClassifierDurationSeconds *prometheus.HistogramVec

	// Embedding metrics
	EmbeddingRequestsTotal *prometheus.CounterVec

	// Synonym resolution metrics
	SynonymLookupsTotal  *prometheus.CounterVec
	SynonymAcceptedTotal prometheus.Counter
	SynonymRejectedTotal prometheus.Counter

	// Literature search metrics
	ScholarRequestsTotal   *prometheus.CounterVec
	ScholarDurationSeconds prometheus.Histogram

	// Cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec

	// Rate limiter metrics
	RateLimiterDropped *prometheus.CounterVec

	// Singleflight metrics
	SingleflightDedupTotal prometheus.Counter
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		AnalyzeRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "emoscope_analyze_requests_total",
				Help: "Total number of analyze requests by status",
			},
			[]string{"status"}, // status: success, invalid_input, unauthorized, rate_limited, error
		),

		AnalyzeDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "emoscope_analyze_duration_seconds",
				Help:    "End-to-end analyze pipeline duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60}, // Covers cold classifier loads
			},
		),

		ClassifierRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "emoscope_classifier_requests_total",
				Help: "Total number of classifier inference requests by model and status",
			},
			[]string{"model", "status"}, // status: success, error, timeout
		),

		ClassifierDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "emoscope_classifier_duration_seconds",
				Help:    "Classifier inference duration in seconds by model",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"model"},
		),

		EmbeddingRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "emoscope_embedding_requests_total",
				Help: "Total number of embedding API requests by status",
			},
			[]string{"status"}, // status: success, error
		),

		SynonymLookupsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "emoscope_synonym_lookups_total",
				Help: "Total number of per-term synonym resolutions by outcome",
			},
			[]string{"outcome"}, // outcome: resolved, empty, error
		),

		SynonymAcceptedTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "emoscope_synonym_candidates_accepted_total",
				Help: "Total synonym candidates accepted by the similarity filter",
			},
		),

		SynonymRejectedTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "emoscope_synonym_candidates_rejected_total",
				Help: "Total synonym candidates rejected by the similarity filter",
			},
		),

		ScholarRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "emoscope_scholar_requests_total",
				Help: "Total number of literature search requests by status",
			},
			[]string{"status"}, // status: success, error, timeout
		),

		ScholarDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "emoscope_scholar_duration_seconds",
				Help:    "Literature search request duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
			},
		),

		CacheHitsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "emoscope_cache_hits_total",
				Help: "Total number of cache hits by cache",
			},
			[]string{"cache"}, // cache: synonym, paper
		),

		CacheMissesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "emoscope_cache_misses_total",
				Help: "Total number of cache misses by cache",
			},
			[]string{"cache"},
		),

		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "emoscope_http_errors_total",
				Help: "Total HTTP errors by type",
			},
			[]string{"error_type"}, // error_type: unauthorized, invalid_input, rate_limit, internal
		),

		RateLimiterDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "emoscope_rate_limiter_dropped_total",
				Help: "Total number of requests dropped by rate limiter",
			},
			[]string{"limiter_type"}, // limiter_type: client, embedding, inference
		),

		SingleflightDedupTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "emoscope_singleflight_dedup_total",
				Help: "Total number of literature searches that waited on an identical in-flight query",
			},
		),
	}

	return m
}

// RecordAnalyze records an analyze request with status and duration.
func (m *Metrics) RecordAnalyze(status string, duration float64) {
	m.AnalyzeRequestsTotal.WithLabelValues(status).Inc()
	m.AnalyzeDurationSeconds.Observe(duration)
}

// RecordClassifierRequest records a classifier inference request.
func (m *Metrics) RecordClassifierRequest(model, status string, duration float64) {
	m.ClassifierRequestsTotal.WithLabelValues(model, status).Inc()
	m.ClassifierDurationSeconds.WithLabelValues(model).Observe(duration)
}

// RecordEmbeddingRequest records an embedding API request.
func (m *Metrics) RecordEmbeddingRequest(status string) {
	m.EmbeddingRequestsTotal.WithLabelValues(status).Inc()
}

// RecordSynonymLookup records a per-term synonym resolution outcome.
func (m *Metrics) RecordSynonymLookup(outcome string) {
	m.SynonymLookupsTotal.WithLabelValues(outcome).Inc()
}

// RecordSynonymFilter records similarity filter decisions.
func (m *Metrics) RecordSynonymFilter(accepted, rejected int) {
	m.SynonymAcceptedTotal.Add(float64(accepted))
	m.SynonymRejectedTotal.Add(float64(rejected))
}

// RecordScholarRequest records a literature search request.
func (m *Metrics) RecordScholarRequest(status string, duration float64) {
	m.ScholarRequestsTotal.WithLabelValues(status).Inc()
	m.ScholarDurationSeconds.Observe(duration)
}

// RecordCacheHit records a cache hit
func (m *Metrics) RecordCacheHit(cache string) {
	m.CacheHitsTotal.WithLabelValues(cache).Inc()
}

// RecordCacheMiss records a cache miss
func (m *Metrics) RecordCacheMiss(cache string) {
	m.CacheMissesTotal.WithLabelValues(cache).Inc()
}

// RecordHTTPError records an HTTP error
func (m *Metrics) RecordHTTPError(errorType string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType).Inc()
}

// RecordRateLimiterDrop records a request dropped by rate limiter
func (m *Metrics) RecordRateLimiterDrop(limiterType string) {
	m.RateLimiterDropped.WithLabelValues(limiterType).Inc()
}

// RecordSingleflightDedup records a deduplicated literature search
func (m *Metrics) RecordSingleflightDedup() {
	m.SingleflightDedupTotal.Inc()
}
