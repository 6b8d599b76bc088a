package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"research-backend/internal/shared/server/respond"
	"research-backend/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := respond.RequestFields(c)
		fields["status"] = c.Writer.Status()
		fields["duration_ms"] = float64(latency.Microseconds()) / 1000.0
		fields["client_ip"] = c.ClientIP()
		fields["user_agent"] = c.Request.UserAgent()
		telemetry.Info("request.complete", fields)
	}
}
