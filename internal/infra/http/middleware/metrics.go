package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/insightflow/tasks-service/pkg/metrics"
)

// Metrics alimenta los contadores de Prometheus usando la ruta registrada
// (no el path real) para acotar la cardinalidad.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		metrics.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
