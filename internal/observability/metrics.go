// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Scoring metrics
	ScoresComputed   prometheus.Counter
	ScoresByTier     *prometheus.CounterVec
	PatternsDetected *prometheus.CounterVec

	// Cache metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	// Refresh metrics
	RefreshRunsTotal     *prometheus.CounterVec
	RefreshDuration      prometheus.Histogram
	RefreshWalletsScored prometheus.Counter

	// API metrics
	APIRequestDuration *prometheus.HistogramVec
	APIRequestsTotal   *prometheus.CounterVec

	// Database metrics
	DBQueryErrors *prometheus.CounterVec

	// Health metrics
	LastSuccessfulRefresh prometheus.Gauge
}

// NewMetrics creates a new Metrics instance registered with the
// process-global default registry.
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer, namespace)
}

// NewMetricsWith creates a new Metrics instance registered with reg.
// Registering two instances with the same registry panics, so tests
// and repeated constructions pass their own prometheus.NewRegistry
// (or nil to skip registration entirely).
func NewMetricsWith(reg prometheus.Registerer, namespace string) *Metrics {
	if namespace == "" {
		namespace = "smart_money_lab"
	}
	factory := promauto.With(reg)

	return &Metrics{
		ScoresComputed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "scores_computed_total",
			Help:      "Total number of smart-money scores computed",
		}),
		ScoresByTier: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "scores_by_tier_total",
			Help:      "Total number of scores computed by confidence tier",
		}, []string{"confidence"}),
		PatternsDetected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "patterns",
			Name:      "detected_total",
			Help:      "Total number of trade patterns detected by type",
		}, []string{"pattern_type"}),

		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total number of cache hits by key class",
		}, []string{"key_class"}),
		CacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total number of cache misses by key class",
		}, []string{"key_class"}),

		RefreshRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "refresh",
			Name:      "runs_total",
			Help:      "Total number of refresh runs by status",
		}, []string{"status"}),
		RefreshDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "refresh",
			Name:      "duration_seconds",
			Help:      "Refresh run duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}),
		RefreshWalletsScored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "refresh",
			Name:      "wallets_scored_total",
			Help:      "Total number of wallets scored by refresh runs",
		}),

		APIRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "API request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		APIRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of API requests by route and status",
		}, []string{"route", "status"}),

		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),

		LastSuccessfulRefresh: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_refresh_timestamp",
			Help:      "Unix timestamp of last successful refresh run",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordScore increments the score counters for a confidence tier.
func (m *Metrics) RecordScore(confidence string) {
	m.ScoresComputed.Inc()
	m.ScoresByTier.WithLabelValues(confidence).Inc()
}

// RecordPattern increments the pattern counter for a pattern type.
func (m *Metrics) RecordPattern(patternType string) {
	m.PatternsDetected.WithLabelValues(patternType).Inc()
}

// RecordCacheLookup records a cache hit or miss for a key class.
func (m *Metrics) RecordCacheLookup(keyClass string, hit bool) {
	if hit {
		m.CacheHits.WithLabelValues(keyClass).Inc()
	} else {
		m.CacheMisses.WithLabelValues(keyClass).Inc()
	}
}

// RecordRefreshRun records a refresh run outcome.
func (m *Metrics) RecordRefreshRun(status string, durationSeconds float64, walletsScored int) {
	m.RefreshRunsTotal.WithLabelValues(status).Inc()
	m.RefreshDuration.Observe(durationSeconds)
	m.RefreshWalletsScored.Add(float64(walletsScored))
}

// RecordAPIRequest records an API request outcome.
func (m *Metrics) RecordAPIRequest(route, status string, durationSeconds float64) {
	m.APIRequestsTotal.WithLabelValues(route, status).Inc()
	m.APIRequestDuration.WithLabelValues(route).Observe(durationSeconds)
}

// RecordDBError records a database query error.
func (m *Metrics) RecordDBError(database, operation string) {
	m.DBQueryErrors.WithLabelValues(database, operation).Inc()
}
