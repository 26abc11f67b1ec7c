package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/credtrailhq/credtrail/internal/metrics"
)

// PrometheusMiddleware records per-request duration and count, labelled by
// method, route pattern and status.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// Label by route pattern (/api/v1/providers/:id), never the raw
		// path, so provider UUIDs do not explode label cardinality.
		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}

		status := strconv.Itoa(c.Writer.Status())
		elapsed := time.Since(start).Seconds()

		metrics.RequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(elapsed)
		metrics.RequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
	}
}
