package handlers

import (
	"bytes"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/nexus/backend/internal/gateway"
	"github.com/emilythestrangee/nexus/backend/internal/models"
	"github.com/emilythestrangee/nexus/backend/internal/normalize"
	"github.com/emilythestrangee/nexus/backend/internal/render"
	"github.com/emilythestrangee/nexus/backend/internal/screen"
)

const htmlContentType = "text/html; charset=utf-8"

// WidgetHandler serves the HTML card fragments embedded by the web pages.
type WidgetHandler struct {
	gw gateway.Gateway
	n  *normalize.Normalizer
	r  *render.Renderer
}

func NewWidgetHandler(gw gateway.Gateway, n *normalize.Normalizer, r *render.Renderer) *WidgetHandler {
	return &WidgetHandler{gw: gw, n: n, r: r}
}

func (h *WidgetHandler) Community(c *gin.Context) {
	snap := screen.NewCommunity(h.gw, h.n).Load(c.Request.Context(), queryFrom(c))

	var buf bytes.Buffer
	if err := h.r.Posts(&buf, snap.Records, snap.Message); err != nil {
		log.Printf("❌ Failed to render community widget: %v", err)
		c.String(http.StatusInternalServerError, "Failed to render posts")
		return
	}
	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}

// LostFound renders cards from lost_found_items, the table the web pages use.
func (h *WidgetHandler) LostFound(c *gin.Context) {
	snap := screen.NewLostFound(h.gw, h.n, models.LostFoundItems).Load(c.Request.Context(), queryFrom(c))

	var buf bytes.Buffer
	if err := h.r.LostItems(&buf, snap.Records, snap.Message); err != nil {
		log.Printf("❌ Failed to render lost & found widget: %v", err)
		c.String(http.StatusInternalServerError, "Failed to render items")
		return
	}
	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}
