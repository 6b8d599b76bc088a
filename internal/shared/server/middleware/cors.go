package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"research-backend/internal/shared/server/respond"
)

const corsPreflightCache = 10 * time.Minute

var (
	corsMethods        = strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}, ",")
	corsRequestHeaders = strings.Join([]string{"Content-Type", SessionHeader, RequestIDHeader}, ", ")
	corsExposeHeaders  = strings.Join([]string{RequestIDHeader, SessionHeader, "Content-Disposition", "Retry-After"}, ", ")
)

// CORS lets the configured browser origins call the API. The session and
// request id headers are exposed so the frontend can persist the session it
// was assigned. Preflights from any other origin are refused with 403.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	origins := make(map[string]struct{})
	for _, o := range allowedOrigins {
		if trimmed := strings.TrimRight(strings.TrimSpace(o), "/"); trimmed != "" {
			origins[trimmed] = struct{}{}
		}
	}
	maxAge := strconv.Itoa(int(corsPreflightCache.Seconds()))

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		_, allowed := origins[origin]

		h := c.Writer.Header()
		h.Add("Vary", "Origin")
		if allowed {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Expose-Headers", corsExposeHeaders)
		}

		if c.Request.Method != http.MethodOptions {
			c.Next()
			return
		}
		if origin != "" && !allowed {
			respond.Error(c, http.StatusForbidden, "origin_not_allowed", "origin is not allowed", nil)
			return
		}
		if allowed {
			h.Set("Access-Control-Allow-Methods", corsMethods)
			h.Set("Access-Control-Allow-Headers", corsRequestHeaders)
			h.Set("Access-Control-Max-Age", maxAge)
		}
		c.AbortWithStatus(http.StatusNoContent)
	}
}
