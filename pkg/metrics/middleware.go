package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware records request counts, latency and the active connection gauge
// for every route. The route template keeps the label cardinality bounded.
func Middleware(m *AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		m.IncrementActiveConnections()
		defer m.DecrementActiveConnections()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.RecordRequest(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
