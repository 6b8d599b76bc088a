package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"research-backend/internal/shared/server/respond"
)

const (
	RequestIDHeader  = "X-Request-Id"
	maxRequestIDSize = 128
)

// RequestID tags the request with the caller's X-Request-Id so a trace can be
// followed across services. Ids that are too long or carry anything other than
// printable ASCII are replaced with a fresh uuid rather than written into logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}
		c.Set(respond.RequestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDSize {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}

// RequestIDFromContext fetches the request ID stored by RequestID middleware.
func RequestIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(respond.RequestIDKey)
}
