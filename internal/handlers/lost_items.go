package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/nexus/backend/internal/gateway"
	"github.com/emilythestrangee/nexus/backend/internal/models"
	"github.com/emilythestrangee/nexus/backend/internal/normalize"
	"github.com/emilythestrangee/nexus/backend/internal/screen"
)

// LostItemHandler serves the mobile lost & found screens, which read the
// lost_items table.
type LostItemHandler struct {
	gw gateway.Gateway
	n  *normalize.Normalizer
}

func NewLostItemHandler(gw gateway.Gateway, n *normalize.Normalizer) *LostItemHandler {
	return &LostItemHandler{gw: gw, n: n}
}

func (h *LostItemHandler) GetItems(c *gin.Context) {
	list := screen.NewLostFound(h.gw, h.n, models.LostItems)
	c.JSON(http.StatusOK, list.Load(c.Request.Context(), queryFrom(c)))
}

func (h *LostItemHandler) GetItem(c *gin.Context) {
	detail := screen.NewLostItemDetail(h.gw, h.n, models.LostItems)
	snap := detail.Load(c.Request.Context(), c.Param("id"))
	if snap.NotFound {
		c.JSON(http.StatusNotFound, snap)
		return
	}
	c.JSON(http.StatusOK, snap)
}
