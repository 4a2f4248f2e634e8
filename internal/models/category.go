package models

import "strings"

// CategoryAll is the filter sentinel meaning "no category filter".
const CategoryAll = "all"

type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var PostCategories = []Category{
	{ID: CategoryAll, Label: "All"},
	{ID: "request", Label: "Requests"},
	{ID: "discussion", Label: "Discussions"},
	{ID: "event", Label: "Events"},
	{ID: "question", Label: "Questions"},
	{ID: "recommendation", Label: "Recommendations"},
	{ID: "announcement", Label: "Announcements"},
}

var LostItemCategories = []Category{
	{ID: CategoryAll, Label: "All Items"},
	{ID: "documents", Label: "Documents"},
	{ID: "devices", Label: "Devices"},
	{ID: "accessories", Label: "Accessories"},
	{ID: "pet", Label: "Pets"},
	{ID: "other", Label: "Other"},
}

const (
	DefaultPostCategory     = "discussion"
	DefaultLostItemCategory = "other"
)

// IsAllCategory reports whether a filter value applies no category filter.
func IsAllCategory(category string) bool {
	c := strings.TrimSpace(category)
	return c == "" || strings.EqualFold(c, CategoryAll)
}

// CategoryLabel returns the display label for id, or id itself when unknown.
func CategoryLabel(set []Category, id string) string {
	for _, c := range set {
		if c.ID == id {
			return c.Label
		}
	}
	return id
}

// CategoriesFor returns the label set for a resource kind.
func CategoriesFor(kind Kind) []Category {
	if kind == KindLostItem {
		return LostItemCategories
	}
	return PostCategories
}
