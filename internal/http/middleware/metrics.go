// README: Prometheus middleware counting requests and latency per route.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tourcalc/internal/metrics"
)

func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// Route templates keep label cardinality bounded.
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.Requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.Latency.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
