package screen

import (
	"github.com/emilythestrangee/nexus/backend/internal/gateway"
	"github.com/emilythestrangee/nexus/backend/internal/models"
	"github.com/emilythestrangee/nexus/backend/internal/normalize"
)

const (
	NoPostsMessage       = "No posts found"
	NoItemsMessage       = "No items found"
	PostsErrorMessage    = "Could not load posts. Try again in a moment."
	ItemsErrorMessage    = "Could not load items. Try again in a moment."
	PostNotFoundMessage  = "Post not found"
	ItemNotFoundMessage  = "Item not found"
	PostErrorMessage     = "Could not load this post."
	LostItemErrorMessage = "Could not load this item."
)

func NewCommunity(gw gateway.Gateway, n *normalize.Normalizer) *List[models.PostView] {
	return NewList(gw, ListConfig[models.PostView]{
		Resource:     models.Posts,
		Normalize:    n.Posts,
		EmptyMessage: NoPostsMessage,
		ErrorMessage: PostsErrorMessage,
	})
}

// NewLostFound builds the lost & found list over res, which is one of the
// two lost-item table aliases.
func NewLostFound(gw gateway.Gateway, n *normalize.Normalizer, res models.Resource) *List[models.LostItemView] {
	return NewList(gw, ListConfig[models.LostItemView]{
		Resource:     res,
		Normalize:    n.LostItems,
		EmptyMessage: NoItemsMessage,
		ErrorMessage: ItemsErrorMessage,
	})
}

func NewPostDetail(gw gateway.Gateway, n *normalize.Normalizer) *Detail[models.PostView] {
	return NewDetail(gw, DetailConfig[models.PostView]{
		Resource:        models.Posts,
		Normalize:       n.Post,
		NotFoundMessage: PostNotFoundMessage,
		ErrorMessage:    PostErrorMessage,
	})
}

func NewLostItemDetail(gw gateway.Gateway, n *normalize.Normalizer, res models.Resource) *Detail[models.LostItemView] {
	return NewDetail(gw, DetailConfig[models.LostItemView]{
		Resource:        res,
		Normalize:       n.LostItem,
		NotFoundMessage: ItemNotFoundMessage,
		ErrorMessage:    LostItemErrorMessage,
	})
}
