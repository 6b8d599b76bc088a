package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"research-backend/internal/shared/server/respond"
)

const (
	SessionHeader    = "X-Session-Id"
	sessionIDKey     = respond.SessionIDKey
	sessionMintedKey = "sessionMinted"
	maxSessionIDSize = 128
)

// Session resolves the caller's research session from X-Session-Id, minting a
// new id when the header is absent. The id is echoed back on every response.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		id := strings.TrimSpace(c.GetHeader(SessionHeader))
		if len(id) > maxSessionIDSize || strings.ContainsAny(id, " \t\r\n") {
			respond.Error(c, http.StatusBadRequest, "invalid_session", "invalid session id", nil)
			return
		}
		if id == "" {
			id = uuid.NewString()
			c.Set(sessionMintedKey, true)
		}

		c.Set(sessionIDKey, id)
		c.Writer.Header().Set(SessionHeader, id)
		c.Next()
	}
}

// SessionIDFromContext fetches the session ID set by the session middleware.
func SessionIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(sessionIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// SessionMinted reports whether the session id was created for this request
// rather than sent by the client.
func SessionMinted(c *gin.Context) bool {
	if c == nil {
		return false
	}
	return c.GetBool(sessionMintedKey)
}
