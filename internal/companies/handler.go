package companies

import (
	"github.com/gin-gonic/gin"

	"research-backend/internal/shared/server/respond"
)

// Handler serves company suggestions.
type Handler struct {
	Catalog *Catalog
}

// NewHandler constructs a Handler.
func NewHandler(catalog *Catalog) *Handler {
	return &Handler{Catalog: catalog}
}

// RegisterRoutes attaches company routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/companies/suggest", h.suggest)
}

type suggestion struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Label  string `json:"label"`
}

func (h *Handler) suggest(c *gin.Context) {
	matches := h.Catalog.Suggest(c.Query("q"))
	items := make([]suggestion, 0, len(matches))
	for _, m := range matches {
		items = append(items, suggestion{Symbol: m.Symbol, Name: m.Name, Label: m.Label()})
	}
	respond.Items(c, items)
}
