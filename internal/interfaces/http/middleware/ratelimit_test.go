package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(3, time.Minute)
	rl.now = func() time.Time { return now }

	for i := range 3 {
		allowed, remaining := rl.Allow("visitor:a")
		require.True(t, allowed, "request %d", i)
		assert.Equal(t, 2-i, remaining)
	}
	allowed, _ := rl.Allow("visitor:a")
	assert.False(t, allowed)

	allowed, _ = rl.Allow("visitor:b")
	assert.True(t, allowed, "clients have separate buckets")

	now = now.Add(20 * time.Second)
	allowed, _ = rl.Allow("visitor:a")
	assert.True(t, allowed, "one token refills every window/requests")
}

func TestRateLimiter_Sweep(t *testing.T) {
	now := time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(10, time.Minute)
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	now = now.Add(time.Minute)
	rl.Allow("b")
	now = now.Add(90 * time.Second)

	assert.Equal(t, 1, rl.Sweep())
	assert.Len(t, rl.clients, 1)
	assert.Contains(t, rl.clients, "b")
}

func TestRateLimit_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(2, time.Hour)
	router := gin.New()
	router.Use(RequestID(), RateLimit(rl))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for range 3 {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)

		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		if w.Code == http.StatusTooManyRequests {
			assert.Contains(t, w.Body.String(), "ERR_RATE_LIMITED")
			assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_KeysByVisitor(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(1, time.Hour)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("visitor_id", c.GetHeader("X-Test-Visitor"))
		c.Next()
	}, RateLimit(rl))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, visitor := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Test-Visitor", visitor)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "visitor %s behind the same IP", visitor)
	}
}
