package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by status code, method, and path
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "writing_contest_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "path"},
	)

	// RequestDuration measures HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "writing_contest_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "path"},
	)

	// RequestInProgress counts HTTP requests currently being processed
	RequestInProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "writing_contest_http_requests_in_progress",
			Help: "Number of HTTP requests currently being processed",
		},
		[]string{"method", "path"},
	)

	// RateLimiterRejections counts rejected requests due to rate limiting
	RateLimiterRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "writing_contest_rate_limiter_rejections_total",
			Help: "Total number of requests rejected by rate limiter",
		},
		[]string{"ip"},
	)

	// DatabaseOperationDuration measures database operation duration
	DatabaseOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "writing_contest_db_operation_duration_seconds",
			Help:    "Database operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	// EntriesCreated counts entry submissions per contest
	EntriesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "writing_contest_entries_created_total",
			Help: "Total number of entries submitted",
		},
		[]string{"contest"},
	)

	// BallotsSubmitted counts accepted review ballots per contest
	BallotsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "writing_contest_ballots_submitted_total",
			Help: "Total number of review ballots accepted",
		},
		[]string{"contest"},
	)

	// VisibilityDenials counts reads refused by the visibility gate
	VisibilityDenials = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "writing_contest_visibility_denials_total",
			Help: "Total number of reads refused by the visibility gate",
		},
		[]string{"facet"},
	)

	// CacheHits counts the number of ranking cache hits
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "writing_contest_cache_hits_total",
			Help: "Total number of ranking cache hits",
		},
	)

	// CacheMisses counts the number of ranking cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "writing_contest_cache_misses_total",
			Help: "Total number of ranking cache misses",
		},
	)

	// MemoryStats tracks memory usage stats
	MemoryStats = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "writing_contest_memory_stats_bytes",
			Help: "Memory statistics in bytes",
		},
		[]string{"type"},
	)

	// GoroutineCount tracks the number of goroutines
	GoroutineCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "writing_contest_goroutine_count",
			Help: "Number of goroutines",
		},
	)
)

// RecordDBOperation records the duration of a database operation
func RecordDBOperation(operation string, table string, startTime time.Time) {
	duration := time.Since(startTime).Seconds()
	DatabaseOperationDuration.WithLabelValues(operation, table).Observe(duration)
}
