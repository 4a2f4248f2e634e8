package normalize

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/nexus/backend/internal/models"
)

func newTestNormalizer() *Normalizer {
	return New("df8w2fain", time.UTC)
}

func TestLostItemScenario(t *testing.T) {
	description := strings.Repeat("Lost black Samsung Galaxy S21. ", 8)[:230]
	row := models.Row{
		"id":          "test-1",
		"title":       "Black Samsung Phone",
		"description": description,
		"item_date":   nil,
		"created_at":  "2026-02-08T00:00:00Z",
	}

	item := newTestNormalizer().LostItem(row)

	assert.Equal(t, "Black Samsung Phone", item.Title)
	assert.Equal(t, "2/8/2026", item.Date)
	assert.Equal(t, "2/8/2026", item.DateAdded)
	assert.Equal(t, description[:150]+"...", item.Snippet)
	assert.Equal(t, description, item.Description)
	assert.False(t, item.HasImage)
	assert.Empty(t, item.ImageURL)
	assert.Equal(t, "other", item.Category)
	assert.Equal(t, "Other", item.CategoryLabel)
	assert.Equal(t, "Unknown", item.Location)
	assert.Equal(t, "Contact provided", item.Contact)
	assert.Equal(t, "open", item.Status)
	assert.Equal(t, 0, item.Views)
	assert.Equal(t, "/lost-found/test-1", item.DetailPath)
}

func TestTitleFallback(t *testing.T) {
	n := newTestNormalizer()
	for _, row := range []models.Row{
		{},
		{"title": nil},
		{"title": ""},
		{"title": "   "},
		{"title": 42},
	} {
		assert.Equal(t, "Untitled", n.Post(row).Title)
		assert.Equal(t, "Untitled", n.LostItem(row).Title)
	}
}

func TestBodyFallbackChain(t *testing.T) {
	n := newTestNormalizer()

	assert.Equal(t, "from body", n.Post(models.Row{"body": "from body", "description": "from description"}).Body)
	assert.Equal(t, "from description", n.Post(models.Row{"body": "", "description": "from description"}).Body)
	assert.Equal(t, "No description provided", n.Post(models.Row{}).Body)
	assert.Equal(t, "No description provided", n.LostItem(models.Row{"description": nil}).Snippet)
}

func TestSnippetThresholds(t *testing.T) {
	cases := []struct {
		name     string
		length   int
		limit    int
		ellipsis bool
	}{
		{"post under", 199, PostSnippetLimit, false},
		{"post at", 200, PostSnippetLimit, false},
		{"post over", 201, PostSnippetLimit, true},
		{"lost under", 149, LostItemSnippetLimit, false},
		{"lost at", 150, LostItemSnippetLimit, false},
		{"lost over", 151, LostItemSnippetLimit, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text := strings.Repeat("a", tc.length)
			got := Snippet(text, tc.limit)
			if tc.ellipsis {
				require.True(t, strings.HasSuffix(got, Ellipsis))
				assert.Equal(t, tc.limit, utf8.RuneCountInString(strings.TrimSuffix(got, Ellipsis)))
			} else {
				assert.Equal(t, text, got)
			}
		})
	}
}

func TestSnippetCountsCharactersNotBytes(t *testing.T) {
	text := strings.Repeat("é", 150)
	assert.Equal(t, text, Snippet(text, 150))

	longer := strings.Repeat("é", 151)
	got := Snippet(longer, 150)
	assert.Equal(t, strings.Repeat("é", 150)+Ellipsis, got)
	assert.True(t, utf8.ValidString(got))
}

func TestPostSnippetUsesTwoHundred(t *testing.T) {
	body := strings.Repeat("b", 260)
	post := newTestNormalizer().Post(models.Row{"body": body})
	assert.Equal(t, strings.Repeat("b", 200)+"...", post.Snippet)
	assert.Equal(t, body, post.Body)
}

func TestImageResolution(t *testing.T) {
	n := newTestNormalizer()

	cases := []struct {
		name string
		row  models.Row
		want string
		has  bool
	}{
		{"absolute url", models.Row{"image_url": "https://picsum.photos/400/300?random=1"}, "https://picsum.photos/400/300?random=1", true},
		{"public id", models.Row{"image_url": "nexus/lost/abc123"}, "https://res.cloudinary.com/df8w2fain/image/upload/w_400,h_300,c_fill/nexus/lost/abc123", true},
		{"falls through blanks", models.Row{"image_url": "  ", "image": nil, "imageUrl": "http://cdn/x.png"}, "http://cdn/x.png", true},
		{"image before imageUrl", models.Row{"image": "first", "imageUrl": "http://second"}, "https://res.cloudinary.com/df8w2fain/image/upload/w_400,h_300,c_fill/first", true},
		{"non-string ignored", models.Row{"image_url": 12}, "", false},
		{"none", models.Row{}, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, has := n.ImageURL(tc.row)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.has, has)
		})
	}
}

func TestImageIdentifierSubstitutedVerbatim(t *testing.T) {
	n := newTestNormalizer()
	for _, id := range []string{"a b/c?d=e", "ÿ%20", "v1700000000/folder/Photo.JPG"} {
		got, ok := n.ImageURL(models.Row{"image_url": id})
		require.True(t, ok)
		assert.Equal(t, "https://res.cloudinary.com/df8w2fain/image/upload/w_400,h_300,c_fill/"+id, got)
	}
}

func TestImageResolutionIsDeterministic(t *testing.T) {
	n := newTestNormalizer()
	row := models.Row{"image": "asset-1"}

	first, _ := n.ImageURL(row)
	for i := 0; i < 10; i++ {
		got, _ := n.ImageURL(row)
		assert.Equal(t, first, got)
	}
	assert.Equal(t, n.Post(row), n.Post(row))
}

func TestCounters(t *testing.T) {
	cases := []struct {
		name string
		row  models.Row
		want int
	}{
		{"absent", models.Row{}, 0},
		{"null", models.Row{"view_count": nil}, 0},
		{"int64", models.Row{"view_count": int64(45)}, 45},
		{"json number", models.Row{"view_count": json.Number("32")}, 32},
		{"float", models.Row{"views": 3.9}, 3},
		{"negative", models.Row{"view_count": -5}, 0},
		{"numeric string", models.Row{"views": " 12 "}, 12},
		{"garbage then fallback", models.Row{"view_count": "lots", "views": 7}, 7},
		{"bool ignored", models.Row{"view_count": true}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Count(tc.row, viewKeys...))
		})
	}
}

func TestReplyCounterFallbacks(t *testing.T) {
	n := newTestNormalizer()
	assert.Equal(t, 4, n.Post(models.Row{"reply_count": 4, "comments": 9}).Replies)
	assert.Equal(t, 2, n.Post(models.Row{"replies": 2}).Replies)
	assert.Equal(t, 9, n.Post(models.Row{"comments": 9}).Replies)
	assert.Equal(t, 0, n.Post(models.Row{"comments": nil}).Replies)
}

func TestAuthor(t *testing.T) {
	assert.Equal(t, "Maria", Author(models.Row{"author": "Maria", "author_id": "0f8c5e2a-1111-2222-3333-444455556666"}))
	assert.Equal(t, "0f8c5e2a", Author(models.Row{"author_id": "0f8c5e2a-1111-2222-3333-444455556666"}))
	assert.Equal(t, "0f8c5e2a", Author(models.Row{"author_id": [16]byte{0x0f, 0x8c, 0x5e, 0x2a}}))
	assert.Equal(t, "abc", Author(models.Row{"author_id": "abc"}))
	assert.Equal(t, "Anonymous", Author(models.Row{"author_id": ""}))
	assert.Equal(t, "Anonymous", Author(models.Row{}))
}

func TestDates(t *testing.T) {
	n := newTestNormalizer()

	cases := []struct {
		name string
		row  models.Row
		want string
	}{
		{"item date wins", models.Row{"item_date": "2026-01-15", "created_at": "2026-02-08T00:00:00Z"}, "1/15/2026"},
		{"date_lost alias", models.Row{"date_lost": "2025-12-31", "created_at": "2026-02-08T00:00:00Z"}, "12/31/2025"},
		{"unparsable item date falls back", models.Row{"item_date": "yesterday", "created_at": "2026-02-08T10:30:00.123456+00:00"}, "2/8/2026"},
		{"postgres text timestamp", models.Row{"created_at": "2026-03-04 05:06:07.89+00"}, "3/4/2026"},
		{"zone-less timestamp", models.Row{"created_at": "2026-03-04T23:59:59"}, "3/4/2026"},
		{"time value", models.Row{"created_at": time.Date(2025, 7, 9, 12, 0, 0, 0, time.UTC)}, "7/9/2025"},
		{"nothing parses", models.Row{"created_at": "soon"}, "Unknown date"},
		{"absent", models.Row{}, "Unknown date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, n.LostItem(tc.row).Date)
		})
	}
}

func TestDatesUseDisplayZone(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	n := New("df8w2fain", loc)

	assert.Equal(t, "2/7/2026", n.Post(models.Row{"created_at": "2026-02-08T03:00:00Z"}).Date)
	// A bare date is a calendar day, not an instant.
	assert.Equal(t, "2/8/2026", n.LostItem(models.Row{"item_date": "2026-02-08"}).Date)
	// Date columns decoded by the driver arrive as UTC midnight.
	day := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2/8/2026", n.LostItem(models.Row{"date_lost": day}).Date)
	assert.Equal(t, "2/8/2026", n.LostItem(models.Row{"item_date": &day}).Date)
	// created_at stays an instant.
	assert.Equal(t, "2/7/2026", n.LostItem(models.Row{"created_at": day}).Date)
}

func TestTextKeptVerbatim(t *testing.T) {
	n := newTestNormalizer()
	body := " " + strings.Repeat("a", 200)

	post := n.Post(models.Row{"body": body, "title": "  Spaced title "})

	assert.Equal(t, body, post.Body)
	assert.Equal(t, "  Spaced title ", post.Title)
	assert.Equal(t, body[:200]+"...", post.Snippet)

	item := n.LostItem(models.Row{"description": "\tkeys\n", "location": " Library "})
	assert.Equal(t, "\tkeys\n", item.Description)
	assert.Equal(t, " Library ", item.Location)
}

func TestLostItemDateAddedUnknown(t *testing.T) {
	assert.Equal(t, "Unknown", newTestNormalizer().LostItem(models.Row{"item_date": "2026-01-01"}).DateAdded)
}

func TestPostDefaults(t *testing.T) {
	post := newTestNormalizer().Post(models.Row{"id": int64(7)})

	assert.Equal(t, "7", post.ID)
	assert.Equal(t, "discussion", post.Category)
	assert.Equal(t, "Discussions", post.CategoryLabel)
	assert.Equal(t, "Anonymous", post.Author)
	assert.Equal(t, "Unknown date", post.Date)
	assert.Equal(t, "/community/7", post.DetailPath)
}

func TestCategoryIsNormalised(t *testing.T) {
	n := newTestNormalizer()
	assert.Equal(t, "event", n.Post(models.Row{"category": " Event "}).Category)
	assert.Equal(t, "Events", n.Post(models.Row{"category": "EVENT"}).CategoryLabel)
	assert.Equal(t, "swap", n.Post(models.Row{"category": "swap"}).CategoryLabel)
	assert.Equal(t, "Pets", n.LostItem(models.Row{"category": "pet"}).CategoryLabel)
}

func TestLostItemFieldAliases(t *testing.T) {
	n := newTestNormalizer()

	item := n.LostItem(models.Row{"location_name": "South Gate Mall", "location": "ignored", "contact_value": "info@example.com", "status": "claimed", "view_count": 45})
	assert.Equal(t, "South Gate Mall", item.Location)
	assert.Equal(t, "info@example.com", item.Contact)
	assert.Equal(t, "claimed", item.Status)
	assert.Equal(t, 45, item.Views)

	item = n.LostItem(models.Row{"location": "Downtown", "contact": "user@example.com"})
	assert.Equal(t, "Downtown", item.Location)
	assert.Equal(t, "user@example.com", item.Contact)
}

func TestBatchesAreNeverNil(t *testing.T) {
	n := newTestNormalizer()
	assert.NotNil(t, n.Posts(nil))
	assert.NotNil(t, n.LostItems(nil))

	rows := []models.Row{{"title": "a"}, {"title": "b"}}
	got := n.Posts(rows)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Title)
	assert.Equal(t, "b", got[1].Title)
}
