package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/emilythestrangee/nexus/backend/internal/gateway"
	"github.com/emilythestrangee/nexus/backend/internal/models"
	"github.com/emilythestrangee/nexus/backend/internal/normalize"
	"github.com/emilythestrangee/nexus/backend/internal/screen"
)

const (
	defaultOverviewLimit = 5
	maxOverviewLimit     = 50
)

// OverviewHandler serves the home screen: newest posts and lost items side
// by side.
type OverviewHandler struct {
	gw gateway.Gateway
	n  *normalize.Normalizer
}

func NewOverviewHandler(gw gateway.Gateway, n *normalize.Normalizer) *OverviewHandler {
	return &OverviewHandler{gw: gw, n: n}
}

func (h *OverviewHandler) GetOverview(c *gin.Context) {
	limit := overviewLimit(c.Query("limit"))
	q := screen.Query{Category: models.CategoryAll}

	var (
		posts screen.Snapshot[models.PostView]
		items screen.Snapshot[models.LostItemView]
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		posts = screen.NewCommunity(h.gw, h.n).Load(ctx, q)
		return nil
	})
	g.Go(func() error {
		items = screen.NewLostFound(h.gw, h.n, models.LostItems).Load(ctx, q)
		return nil
	})
	_ = g.Wait()

	posts.Records = head(posts.Records, limit)
	items.Records = head(items.Records, limit)

	c.JSON(http.StatusOK, gin.H{
		"posts":      posts,
		"lost_items": items,
	})
}

func overviewLimit(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return defaultOverviewLimit
	}
	if n > maxOverviewLimit {
		return maxOverviewLimit
	}
	return n
}

func head[T any](records []T, n int) []T {
	if len(records) > n {
		return records[:n]
	}
	return records
}
