package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   prometheus.CounterVec
	HTTPRequestDuration prometheus.HistogramVec

	// Response cache metrics
	CacheHitsTotal         prometheus.CounterVec
	CacheMissesTotal       prometheus.CounterVec
	CacheOperationDuration prometheus.HistogramVec
	CacheInvalidations     prometheus.CounterVec

	// Database metrics
	DatabaseQueriesTotal  prometheus.CounterVec
	DatabaseQueryDuration prometheus.HistogramVec

	// Domain counters
	LessonPlanOutcomes prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Get returns the singleton metrics instance, registering on first use.
func Get() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"method", "path", "status"},
			),
			CacheHitsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "response_cache_hits_total",
					Help: "Response cache hits by TTL tier",
				},
				[]string{"tier"},
			),
			CacheMissesTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "response_cache_misses_total",
					Help: "Response cache misses by TTL tier",
				},
				[]string{"tier"},
			),
			CacheOperationDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "response_cache_operation_duration_seconds",
					Help:    "Redis operation latency for the response cache",
					Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
				},
				[]string{"operation", "tier"},
			),
			CacheInvalidations: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "response_cache_invalidations_total",
					Help: "Keys invalidated after mutations, by pattern",
				},
				[]string{"pattern"},
			),
			DatabaseQueriesTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "database_queries_total",
					Help: "Database queries by table and status",
				},
				[]string{"table", "status"},
			),
			DatabaseQueryDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "database_query_duration_seconds",
					Help:    "Database query latency in seconds",
					Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
				},
				[]string{"table"},
			),
			LessonPlanOutcomes: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "lesson_plan_submissions_total",
					Help: "Lesson-plan submissions by resolver outcome",
				},
				[]string{"outcome"},
			),
		}
	})
	return instance
}
