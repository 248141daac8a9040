package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-quality/internal/shared/metrics"
	"resume-quality/internal/shared/telemetry"
)

// Logging emits a structured log per request and records request metrics.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveRequest(c.Request.Method, route, status)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       route,
			"status":      status,
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if id := c.Param("id"); id != "" {
			fields["workflow_id"] = id
		}
		if v, ok := c.Get("workflowId"); ok {
			fields["workflow_id"] = v
		}
		if v, ok := c.Get("documentType"); ok {
			fields["document_type"] = v
		}
		telemetry.Info("request.complete", fields)
	}
}
