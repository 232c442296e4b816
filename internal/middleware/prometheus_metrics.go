package middleware

import (
	"strconv"
	"time"

	"github.com/classhub/backend/internal/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware collects HTTP metrics for Prometheus
func MetricsMiddleware() gin.HandlerFunc {
	m := metrics.Get()

	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		duration := time.Since(startTime).Seconds()
		// Use the route template, not the raw path, so /lesson-plans/:id
		// counts as one series instead of one per record.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
	}
}

// RecordCacheHit counts a response-cache hit for a TTL tier.
func RecordCacheHit(tier string) {
	metrics.Get().CacheHitsTotal.WithLabelValues(tier).Inc()
}

// RecordCacheMiss counts a response-cache miss for a TTL tier.
func RecordCacheMiss(tier string) {
	metrics.Get().CacheMissesTotal.WithLabelValues(tier).Inc()
}

// RecordCacheOperation times a redis operation for the response cache.
func RecordCacheOperation(operation, tier string, duration time.Duration) {
	metrics.Get().CacheOperationDuration.WithLabelValues(operation, tier).Observe(duration.Seconds())
}

// RecordCacheInvalidation counts keys cleared after a mutation.
func RecordCacheInvalidation(pattern string, count int) {
	metrics.Get().CacheInvalidations.WithLabelValues(pattern).Add(float64(count))
}

// RecordLessonPlanOutcome counts a resolver outcome.
func RecordLessonPlanOutcome(outcome string) {
	metrics.Get().LessonPlanOutcomes.WithLabelValues(outcome).Inc()
}
