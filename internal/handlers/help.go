package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/nexus/backend/internal/help"
)

type HelpHandler struct{}

func NewHelpHandler() *HelpHandler {
	return &HelpHandler{}
}

func (h *HelpHandler) GetFAQ(c *gin.Context) {
	q := c.Query("q")
	c.JSON(http.StatusOK, gin.H{
		"query":    q,
		"sections": help.Filter(q),
	})
}
