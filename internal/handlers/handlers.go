package handlers

import (
	"github.com/emilythestrangee/nexus/backend/internal/gateway"
	"github.com/emilythestrangee/nexus/backend/internal/normalize"
	"github.com/emilythestrangee/nexus/backend/internal/render"
)

// Handler combines all handler types
type Handler struct {
	Post     *PostHandler
	LostItem *LostItemHandler
	Widget   *WidgetHandler
	Help     *HelpHandler
	Overview *OverviewHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(gw gateway.Gateway, n *normalize.Normalizer, r *render.Renderer) *Handler {
	return &Handler{
		Post:     NewPostHandler(gw, n),
		LostItem: NewLostItemHandler(gw, n),
		Widget:   NewWidgetHandler(gw, n, r),
		Help:     NewHelpHandler(),
		Overview: NewOverviewHandler(gw, n),
	}
}
