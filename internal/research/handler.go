package research

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"research-backend/internal/llm"
	"research-backend/internal/shared/server/middleware"
	"research-backend/internal/shared/server/respond"
	"research-backend/research/model"
)

const maxNotesBytes = 1 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches research routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/research/generate", h.generate)
	rg.GET("/research/current", h.current)
	rg.PUT("/research/current/notes", h.saveNotes)
}

type generateRequest struct {
	Company string `json:"company"`
	Ticker  string `json:"ticker"`
	Sector  string `json:"sector"`
	Country string `json:"country"`
}

type saveNotesRequest struct {
	Notes string `json:"notes"`
}

type sessionResponse struct {
	Company   string               `json:"company"`
	Ticker    string               `json:"ticker,omitempty"`
	Sector    string               `json:"sector,omitempty"`
	Country   string               `json:"country,omitempty"`
	Research  model.ResearchRecord `json:"research"`
	Notes     string               `json:"notes"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

func toResponse(sess Session) sessionResponse {
	return sessionResponse{
		Company:   sess.Company,
		Ticker:    sess.Ticker,
		Sector:    sess.Sector,
		Country:   sess.Country,
		Research:  sess.Record,
		Notes:     sess.Notes,
		UpdatedAt: sess.UpdatedAt,
	}
}

func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Invalid(c, "invalid request body")
		return
	}

	sess, err := h.Svc.Generate(c.Request.Context(), middleware.SessionIDFromContext(c), llm.GenerateInput{
		Company: req.Company,
		Ticker:  req.Ticker,
		Sector:  req.Sector,
		Country: req.Country,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Invalid(c, "Company name is required")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			respond.Error(c, http.StatusGatewayTimeout, "generation_timeout", "research generation did not finish", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to generate research", nil)
		}
		return
	}

	respond.OK(c, toResponse(sess))
}

func (h *Handler) current(c *gin.Context) {
	sess, err := h.Svc.Current(c.Request.Context(), middleware.SessionIDFromContext(c))
	if err != nil {
		writeSessionError(c, err)
		return
	}
	respond.OK(c, toResponse(sess))
}

func (h *Handler) saveNotes(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxNotesBytes)

	var req saveNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Invalid(c, "invalid request body")
		return
	}

	sess, err := h.Svc.SaveNotes(c.Request.Context(), middleware.SessionIDFromContext(c), req.Notes)
	if err != nil {
		writeSessionError(c, err)
		return
	}
	respond.OK(c, toResponse(sess))
}

func writeSessionError(c *gin.Context, err error) {
	if errors.Is(err, ErrNoResearch) {
		respond.Error(c, http.StatusNotFound, "no_research", "no research generated for this session", nil)
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load research", nil)
}
