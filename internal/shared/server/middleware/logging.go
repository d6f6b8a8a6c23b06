package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		sessionGUID := ""
		if raw, ok := c.Get("sessionGuid"); ok {
			if s, ok := raw.(string); ok {
				sessionGUID = s
			}
		}

		telemetry.Info("request.complete", map[string]any{
			"request_id":   RequestIDFromContext(c),
			"method":       c.Request.Method,
			"path":         c.Request.URL.Path,
			"status":       c.Writer.Status(),
			"duration_ms":  float64(latency.Microseconds()) / 1000.0,
			"session_guid": sessionGUID,
			"client_ip":    c.ClientIP(),
			"user_agent":   c.Request.UserAgent(),
		})
	}
}
