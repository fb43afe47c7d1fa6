package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"glnc_delivery/internal/metrics"
)

// Metrics records request counts and latency per route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.RequestsInFlight.Inc()
		defer metrics.RequestsInFlight.Dec()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RequestsTotal.WithLabelValues(c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.RequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}
