package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/nexus/backend/internal/gateway"
	"github.com/emilythestrangee/nexus/backend/internal/models"
	"github.com/emilythestrangee/nexus/backend/internal/normalize"
	"github.com/emilythestrangee/nexus/backend/internal/screen"
)

type PostHandler struct {
	gw gateway.Gateway
	n  *normalize.Normalizer
}

func NewPostHandler(gw gateway.Gateway, n *normalize.Normalizer) *PostHandler {
	return &PostHandler{gw: gw, n: n}
}

// GetPosts returns the community list screen for ?category= and ?q=.
// Backend failures come back as 200 with an error state.
func (h *PostHandler) GetPosts(c *gin.Context) {
	list := screen.NewCommunity(h.gw, h.n)
	c.JSON(http.StatusOK, list.Load(c.Request.Context(), queryFrom(c)))
}

// GetPost returns a single post by ID
func (h *PostHandler) GetPost(c *gin.Context) {
	detail := screen.NewPostDetail(h.gw, h.n)
	snap := detail.Load(c.Request.Context(), c.Param("id"))
	if snap.NotFound {
		c.JSON(http.StatusNotFound, snap)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// GetCategories returns the filter labels for a resource.
func GetCategories(c *gin.Context) {
	switch c.Param("resource") {
	case "community":
		c.JSON(http.StatusOK, models.CategoriesFor(models.KindPost))
	case "lost-found":
		c.JSON(http.StatusOK, models.CategoriesFor(models.KindLostItem))
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown resource"})
	}
}

func queryFrom(c *gin.Context) screen.Query {
	return screen.Query{
		Category: c.DefaultQuery("category", models.CategoryAll),
		Search:   c.Query("q"),
	}
}
