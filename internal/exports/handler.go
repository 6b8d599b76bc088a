package exports

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"research-backend/internal/notes"
	"research-backend/internal/research"
	"research-backend/internal/shared/server/middleware"
	"research-backend/internal/shared/server/respond"
	"research-backend/research/render"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches export routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/research/current/export", h.exportCurrent)
	rg.POST("/notes/:id/export", h.exportNote)
	rg.GET("/notes/:id/exports", h.listByNote)
	rg.GET("/exports/:id/download", h.download)
	rg.GET("/exports/:id/text", h.text)
}

func (h *Handler) exportCurrent(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Invalid(c, "invalid request body")
		return
	}
	c.Set(respond.ExportFormatKey, req.Format)

	artifact, err := h.Svc.ExportCurrent(c.Request.Context(), middleware.SessionIDFromContext(c), req.options())
	if err != nil {
		writeError(c, err)
		return
	}
	respond.Attachment(c, artifact.FileName, artifact.ContentType, artifact.Data)
}

func (h *Handler) exportNote(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Invalid(c, "invalid request body")
		return
	}
	c.Set(respond.ExportFormatKey, req.Format)
	c.Set(respond.NoteIDKey, c.Param("id"))

	export, err := h.Svc.ExportNote(c.Request.Context(), c.Param("id"), req.options())
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(respond.ExportIDKey, export.ID)
	respond.Created(c, toResponse(export))
}

func (h *Handler) listByNote(c *gin.Context) {
	items, err := h.Svc.ListByNote(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]ExportResponse, 0, len(items))
	for _, e := range items {
		out = append(out, toResponse(e))
	}
	respond.Items(c, out)
}

func (h *Handler) download(c *gin.Context) {
	c.Set(respond.ExportIDKey, c.Param("id"))
	export, rc, err := h.Svc.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	defer rc.Close()
	respond.AttachmentStream(c, export.FileName, export.ContentType(), rc)
}

func (h *Handler) text(c *gin.Context) {
	c.Set(respond.ExportIDKey, c.Param("id"))
	text, err := h.Svc.Text(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"id": c.Param("id"), "text": text})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidTimezone):
		respond.Invalid(c, "timezone must be an IANA zone name such as America/New_York")
	case errors.Is(err, ErrInvalidInput):
		respond.Invalid(c, "format must be one of md, pdf, docx")
	case errors.Is(err, research.ErrNoResearch):
		respond.Error(c, http.StatusNotFound, "no_research", "no research generated for this session", nil)
	case errors.Is(err, notes.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Note not found", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Export not found", nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusGatewayTimeout, "export_timeout", "export did not finish", nil)
	case errors.Is(err, render.ErrUnsupportedCharacter):
		respond.Error(c, http.StatusUnprocessableEntity, "unsupported_character", "PDF export supports Western European text only; use md or docx", nil)
	case errors.Is(err, ErrExportFailed):
		respond.Error(c, http.StatusInternalServerError, "export_failed", "Failed to export research", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "export request failed", nil)
	}
}
