package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cephas20k/secops/internal/metrics"
)

// APIMetricRecorder receives one sample per completed HTTP request. The
// engine uses these samples to derive dashboard health figures.
type APIMetricRecorder interface {
	RecordAPIRequestMetric(route, method string, statusCode int, latencyMs float64, success bool)
}

// PrometheusMiddleware records HTTP request duration and count, and forwards
// a per-request sample to the recorder when one is provided.
func PrometheusMiddleware(recorder APIMetricRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath() // route pattern, not actual path (avoids cardinality explosion)
		if path == "" {
			path = "unknown"
		}
		metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		metrics.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if recorder != nil {
			code := c.Writer.Status()
			recorder.RecordAPIRequestMetric(path, c.Request.Method, code, duration*1000, code < 400)
		}
	}
}
