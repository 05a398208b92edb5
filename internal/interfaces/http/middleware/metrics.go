package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/telemetry"
)

// HTTPMetrics records the count and latency of every request by route
// pattern, so path parameters do not explode label cardinality
func HTTPMetrics(metrics *telemetry.Metrics) gin.HandlerFunc {
	if metrics == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
