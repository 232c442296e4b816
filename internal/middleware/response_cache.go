package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/classhub/backend/internal/cache"
	"github.com/classhub/backend/internal/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// cacheSchemaVersion is baked into every key. Bumping it orphans all old
// entries at once, which then age out on their own TTLs.
const cacheSchemaVersion = "v1"

// CacheTier buckets endpoints by how stale their responses may be.
type CacheTier struct {
	Name string
	TTL  time.Duration
}

// The four tiers: longest for rarely-changing reference data, shortest for
// live substitution data.
var (
	CacheTierLong     = CacheTier{Name: "long", TTL: time.Hour}
	CacheTierMedium   = CacheTier{Name: "medium", TTL: 10 * time.Minute}
	CacheTierShort    = CacheTier{Name: "short", TTL: 2 * time.Minute}
	CacheTierRealtime = CacheTier{Name: "realtime", TTL: 15 * time.Second}
)

// flightGroup de-duplicates concurrent identical cache misses: one request
// executes the handler, the rest share its response.
var flightGroup singleflight.Group

var errNotCacheable = errors.New("response not cacheable")

// ResponseCacheMiddleware caches successful GET responses in redis with the
// tier's TTL. Not correctness-critical: with redis down it passes requests
// straight through. Adds X-Cache: HIT/MISS/SHARED for debugging.
func ResponseCacheMiddleware(tier CacheTier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		redisClient := cache.GetRedisClient()
		if redisClient == nil {
			c.Next()
			return
		}

		userID := c.GetString("user_id")
		cacheKey := generateCacheKey(c.Request.URL.Path, c.Request.URL.RawQuery, userID)
		ctx := c.Request.Context()

		startTime := time.Now()
		cachedData, err := redisClient.Get(ctx, cacheKey)
		RecordCacheOperation("GET", tier.Name, time.Since(startTime))

		if err == nil {
			RecordCacheHit(tier.Name)
			c.Header("X-Cache", "HIT")
			c.Header("Cache-Control", fmt.Sprintf("private, max-age=%d", int(tier.TTL.Seconds())))
			c.Data(http.StatusOK, "application/json", []byte(cachedData))
			c.Abort()
			return
		}

		RecordCacheMiss(tier.Name)

		executed := false
		shared, flightErr, isShared := flightGroup.Do(cacheKey, func() (interface{}, error) {
			executed = true

			writer := &cachedResponseWriter{
				ResponseWriter: c.Writer,
				statusCode:     http.StatusOK,
				body:           &bytes.Buffer{},
			}
			c.Writer = writer
			c.Header("X-Cache", "MISS")
			c.Header("Cache-Control", fmt.Sprintf("private, max-age=%d", int(tier.TTL.Seconds())))

			c.Next()

			if writer.statusCode < 200 || writer.statusCode >= 300 || writer.body.Len() == 0 {
				return nil, errNotCacheable
			}

			bodyStr := writer.body.String()
			setStart := time.Now()
			if err := redisClient.SetEx(ctx, cacheKey, bodyStr, tier.TTL); err != nil {
				logger.Log.Debug("Failed to write response to cache",
					zap.String("key", cacheKey),
					zap.Error(err),
				)
			}
			RecordCacheOperation("SET", tier.Name, time.Since(setStart))
			return bodyStr, nil
		})

		if executed {
			return
		}

		// This request lost the singleflight race; serve the winner's result.
		if flightErr == nil {
			if body, ok := shared.(string); ok {
				if isShared {
					c.Header("X-Cache", "SHARED")
				}
				c.Data(http.StatusOK, "application/json", []byte(body))
				c.Abort()
				return
			}
		}

		// Winner's response was not cacheable; run our own handlers.
		c.Next()
	}
}

// generateCacheKey creates a cache key from request path, query params, and
// user ID. Responses are user-scoped because most listings filter by the
// authenticated teacher.
func generateCacheKey(path, query, userID string) string {
	key := fmt.Sprintf("response:%s:%s", cacheSchemaVersion, path)
	if query != "" {
		key = fmt.Sprintf("%s?%s", key, query)
	}
	if userID != "" {
		key = fmt.Sprintf("%s:%s", key, userID)
	}
	return key
}

// cachedResponseWriter intercepts response writes to capture the body
type cachedResponseWriter struct {
	gin.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (w *cachedResponseWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *cachedResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// CacheInvalidationMiddleware clears related read keys after a successful
// mutation (e.g. assigning a substitution clears the substitution listings).
// Patterns are path globs relative to the versioned key prefix.
func CacheInvalidationMiddleware(invalidationPatterns ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
		default:
			return
		}
		if c.Writer.Status() < 200 || c.Writer.Status() >= 400 {
			return
		}

		redisClient := cache.GetRedisClient()
		if redisClient == nil {
			return
		}

		ctx := c.Request.Context()
		for _, pattern := range invalidationPatterns {
			fullPattern := fmt.Sprintf("response:%s:%s", cacheSchemaVersion, pattern)
			keys, err := redisClient.Keys(ctx, fullPattern)
			if err != nil {
				logger.Log.Debug("Failed to find cache keys for invalidation",
					zap.String("pattern", fullPattern),
					zap.Error(err),
				)
				continue
			}
			if len(keys) == 0 {
				continue
			}
			if err := redisClient.Del(ctx, keys...); err != nil {
				logger.Log.Warn("Failed to invalidate cache",
					zap.Strings("keys", keys),
					zap.Error(err),
				)
				continue
			}
			RecordCacheInvalidation(pattern, len(keys))
			logger.Log.Debug("Cache invalidated",
				zap.String("pattern", fullPattern),
				zap.Int("keys", len(keys)),
			)
		}
	}
}
