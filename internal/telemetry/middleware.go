package telemetry

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware tracks HTTP request metrics. Routes are labelled by their pattern
// so path parameters do not explode cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		APIActiveConnections.Inc()
		defer APIActiveConnections.Dec()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		APIRequestDuration.WithLabelValues(c.Request.Method, endpoint, status).Observe(time.Since(start).Seconds())
		APIRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
	}
}
