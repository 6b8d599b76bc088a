package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"research-backend/internal/shared/telemetry"
)

// Context keys that handlers and middleware set on the gin context. They are
// copied into every error and access log line when present.
const (
	RequestIDKey    = "requestId"
	SessionIDKey    = "sessionId"
	ExportFormatKey = "exportFormat"
	NoteIDKey       = "noteId"
	ExportIDKey     = "exportId"
)

var logKeys = [...]struct{ ctx, field string }{
	{RequestIDKey, "request_id"},
	{SessionIDKey, "session_id"},
	{ExportFormatKey, "export_format"},
	{NoteIDKey, "note_id"},
	{ExportIDKey, "export_id"},
}

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// RequestFields returns the method, path and whichever research identifiers
// the request has accumulated so far.
func RequestFields(c *gin.Context) map[string]any {
	fields := map[string]any{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}
	for _, k := range logKeys {
		if v, ok := c.Get(k.ctx); ok && v != "" {
			fields[k.field] = v
		}
	}
	return fields
}

// Error sends a standardized error response. Server faults log at error level,
// client mistakes at warn.
func Error(c *gin.Context, status int, code, message string, details any) {
	fields := RequestFields(c)
	fields["status"] = status
	fields["code"] = code
	fields["message"] = message
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Invalid rejects a request whose input failed validation.
func Invalid(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, "validation_error", message, nil)
}
