package models

// Kind identifies which entity shape a resource's rows carry.
type Kind int

const (
	KindPost Kind = iota
	KindLostItem
)

func (k Kind) String() string {
	switch k {
	case KindPost:
		return "post"
	case KindLostItem:
		return "lost-item"
	default:
		return "unknown"
	}
}

// Resource is a queryable backend collection.
type Resource struct {
	Name       string
	Table      string
	TextColumn string
	Kind       Kind
}

// The two lost-item resources read differently named tables for the same
// entity. They stay separate aliases until the schemas are reconciled.
var (
	Posts = Resource{
		Name:       "posts",
		Table:      "community_posts",
		TextColumn: "body",
		Kind:       KindPost,
	}
	LostItems = Resource{
		Name:       "lost-items",
		Table:      "lost_items",
		TextColumn: "description",
		Kind:       KindLostItem,
	}
	LostFoundItems = Resource{
		Name:       "lost-found-items",
		Table:      "lost_found_items",
		TextColumn: "description",
		Kind:       KindLostItem,
	}
)

// Resources lists every known resource.
func Resources() []Resource {
	return []Resource{Posts, LostItems, LostFoundItems}
}

// Row is one backend record, keyed by column name as stored.
type Row map[string]any
