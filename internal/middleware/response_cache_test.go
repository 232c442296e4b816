package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	testCases := []struct {
		name   string
		path   string
		query  string
		userID string
		want   string
	}{
		{
			name: "path only",
			path: "/api/v1/schemes",
			want: "response:v1:/api/v1/schemes",
		},
		{
			name:  "with query",
			path:  "/api/v1/schemes",
			query: "class=7A&subject=Math",
			want:  "response:v1:/api/v1/schemes?class=7A&subject=Math",
		},
		{
			name:   "user scoped",
			path:   "/api/v1/lesson-plans",
			userID: "u-1",
			want:   "response:v1:/api/v1/lesson-plans:u-1",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, generateCacheKey(tc.path, tc.query, tc.userID))
		})
	}
}

func TestCacheTierTTLOrdering(t *testing.T) {
	// Reference data lives longest, live substitution data shortest.
	assert.Greater(t, CacheTierLong.TTL, CacheTierMedium.TTL)
	assert.Greater(t, CacheTierMedium.TTL, CacheTierShort.TTL)
	assert.Greater(t, CacheTierShort.TTL, CacheTierRealtime.TTL)
	assert.Equal(t, 15*time.Second, CacheTierRealtime.TTL)
}

func TestResponseCachePassesThroughWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ResponseCacheMiddleware(CacheTierShort))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"pong": true}`, w.Body.String())
	assert.Empty(t, w.Header().Get("X-Cache"), "no cache headers when redis is unavailable")
}

func TestCacheInvalidationIgnoresReads(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CacheInvalidationMiddleware("/api/v1/substitutions*"))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
