// Package normalize maps raw backend rows to the canonical records every
// surface renders. Missing fields are never errors; each one resolves to a
// fixed default.
package normalize

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/emilythestrangee/nexus/backend/internal/models"
)

const (
	PostSnippetLimit     = 200
	LostItemSnippetLimit = 150
	Ellipsis             = "..."

	Untitled        = "Untitled"
	NoDescription   = "No description provided"
	UnknownDate     = "Unknown date"
	UnknownAdded    = "Unknown"
	Anonymous       = "Anonymous"
	UnknownLocation = "Unknown"
	ContactProvided = "Contact provided"
	DefaultStatus   = "open"

	displayDateLayout = "1/2/2006"
	authorPrefixLen   = 8
	cdnURLTemplate    = "https://res.cloudinary.com/%s/image/upload/w_400,h_300,c_fill/%s"
)

var (
	titleKeys   = []string{"title"}
	bodyKeys    = []string{"body", "description"}
	imageKeys   = []string{"image_url", "image", "imageUrl"}
	viewKeys    = []string{"view_count", "views"}
	replyKeys   = []string{"reply_count", "replies", "comments"}
	locationKey = []string{"location_name", "location"}
	contactKeys = []string{"contact_value", "contact"}

	calendarKeys = map[string]bool{"item_date": true, "date_lost": true}
)

// Normalizer is configured once and shared by every surface.
type Normalizer struct {
	cloudName string
	loc       *time.Location
}

func New(cloudName string, loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{cloudName: cloudName, loc: loc}
}

func (n *Normalizer) Post(row models.Row) models.PostView {
	id, _ := asString(row["id"])
	body := TextOr(row, NoDescription, bodyKeys...)
	category := n.category(row, models.DefaultPostCategory)
	image, hasImage := n.ImageURL(row)

	return models.PostView{
		ID:            id,
		Title:         TextOr(row, Untitled, titleKeys...),
		Body:          body,
		Snippet:       Snippet(body, PostSnippetLimit),
		Category:      category,
		CategoryLabel: models.CategoryLabel(models.PostCategories, category),
		ImageURL:      image,
		HasImage:      hasImage,
		Author:        Author(row),
		Date:          n.Date(row, "created_at"),
		Views:         Count(row, viewKeys...),
		Replies:       Count(row, replyKeys...),
		DetailPath:    "/community/" + url.PathEscape(id),
	}
}

func (n *Normalizer) LostItem(row models.Row) models.LostItemView {
	id, _ := asString(row["id"])
	description := TextOr(row, NoDescription, bodyKeys...)
	category := n.category(row, models.DefaultLostItemCategory)
	image, hasImage := n.ImageURL(row)

	dateAdded := n.Date(row, "created_at")
	if dateAdded == UnknownDate {
		dateAdded = UnknownAdded
	}

	return models.LostItemView{
		ID:            id,
		Title:         TextOr(row, Untitled, titleKeys...),
		Description:   description,
		Snippet:       Snippet(description, LostItemSnippetLimit),
		Category:      category,
		CategoryLabel: models.CategoryLabel(models.LostItemCategories, category),
		ImageURL:      image,
		HasImage:      hasImage,
		Location:      TextOr(row, UnknownLocation, locationKey...),
		Date:          n.Date(row, "item_date", "date_lost", "created_at"),
		DateAdded:     dateAdded,
		Contact:       TextOr(row, ContactProvided, contactKeys...),
		Status:        TextOr(row, DefaultStatus, "status"),
		Views:         Count(row, viewKeys...),
		DetailPath:    "/lost-found/" + url.PathEscape(id),
	}
}

// Posts normalizes rows in order. The result is never nil.
func (n *Normalizer) Posts(rows []models.Row) []models.PostView {
	out := make([]models.PostView, 0, len(rows))
	for _, r := range rows {
		out = append(out, n.Post(r))
	}
	return out
}

// LostItems normalizes rows in order. The result is never nil.
func (n *Normalizer) LostItems(rows []models.Row) []models.LostItemView {
	out := make([]models.LostItemView, 0, len(rows))
	for _, r := range rows {
		out = append(out, n.LostItem(r))
	}
	return out
}

// ImageURL resolves the first non-blank image candidate. Absolute URLs pass
// through; anything else is a CDN public id substituted into the template.
func (n *Normalizer) ImageURL(row models.Row) (string, bool) {
	for _, k := range imageKeys {
		v, ok := asText(row[k])
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		if strings.HasPrefix(v, "http") {
			return v, true
		}
		return fmt.Sprintf(cdnURLTemplate, n.cloudName, v), true
	}
	return "", false
}

// Date formats the first key that parses as a date, M/D/YYYY. Values under
// calendar-date keys are days, not instants.
func (n *Normalizer) Date(row models.Row, keys ...string) string {
	for _, k := range keys {
		if t, ok := parseTime(row[k], n.loc); ok {
			if calendarKeys[k] {
				t = calendarDay(t, n.loc)
			}
			return t.In(n.loc).Format(displayDateLayout)
		}
	}
	return UnknownDate
}

func (n *Normalizer) category(row models.Row, fallback string) string {
	c, ok := Text(row, "category")
	if !ok {
		return fallback
	}
	return strings.ToLower(strings.TrimSpace(c))
}

// Snippet cuts text to limit characters and marks the cut with an ellipsis.
// Text at or under the limit is returned unchanged.
func Snippet(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + Ellipsis
}

// Author prefers an explicit name, then a short prefix of the author id.
func Author(row models.Row) string {
	if name, ok := Text(row, "author"); ok {
		return name
	}
	id, ok := asString(row["author_id"])
	id = strings.TrimSpace(id)
	if !ok || id == "" {
		return Anonymous
	}
	if utf8.RuneCountInString(id) > authorPrefixLen {
		id = string([]rune(id)[:authorPrefixLen])
	}
	return id
}
