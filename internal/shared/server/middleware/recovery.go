package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"research-backend/internal/shared/server/respond"
	"research-backend/internal/shared/telemetry"
)

// Recovery turns a handler panic into a logged 500. A panic in the middle of a
// streamed download cannot change the status already sent, so the connection
// is only cut short.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			fields := respond.RequestFields(c)
			fields["error"] = rec
			fields["stack"] = string(debug.Stack())
			fields["response_started"] = c.Writer.Written()
			telemetry.Error("panic", fields)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
		}()
		c.Next()
	}
}
