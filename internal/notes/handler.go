package notes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"research-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches note routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/notes", h.create)
	rg.GET("/notes", h.list)
	rg.GET("/notes/:id", h.get)
	rg.PATCH("/notes/:id", h.update)
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Invalid(c, "invalid request body")
		return
	}

	note, err := h.Svc.Create(c.Request.Context(), CreateInput{
		Company:         req.Company,
		Ticker:          req.Ticker,
		Title:           req.Title,
		MarkdownContent: req.MarkdownContent,
		Sections:        req.Sections,
		CreatedBy:       req.CreatedBy,
	})
	if err != nil {
		writeError(c, err, "failed to create note")
		return
	}
	respond.Created(c, toResponse(note))
}

func (h *Handler) update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Invalid(c, "invalid request body")
		return
	}

	note, err := h.Svc.Update(c.Request.Context(), c.Param("id"), UpdateInput{
		Title:           req.Title,
		MarkdownContent: req.MarkdownContent,
		Sections:        req.Sections,
	})
	if err != nil {
		writeError(c, err, "failed to update note")
		return
	}
	respond.OK(c, toResponse(note))
}

func (h *Handler) get(c *gin.Context) {
	note, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to fetch note")
		return
	}
	respond.OK(c, toResponse(note))
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), c.Query("company"))
	if err != nil {
		writeError(c, err, "failed to list notes")
		return
	}
	out := make([]NoteResponse, 0, len(items))
	for _, n := range items {
		out = append(out, toResponse(n))
	}
	respond.Items(c, out)
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Note not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Invalid(c, err.Error())
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
