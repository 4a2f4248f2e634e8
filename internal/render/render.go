// Package render turns canonical records into HTML widget cards. It never
// fetches data.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/emilythestrangee/nexus/backend/internal/models"
)

//go:embed templates/*.partial.html
var templateFS embed.FS

const (
	EmptyPosts     = "No posts found"
	EmptyLostItems = "No items found"
)

var functions = template.FuncMap{
	"upper": strings.ToUpper,
}

type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(functions).ParseFS(templateFS, "templates/*.partial.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing widget templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Post(w io.Writer, post models.PostView) error {
	return r.execute(w, "post", post)
}

func (r *Renderer) LostItem(w io.Writer, item models.LostItemView) error {
	return r.execute(w, "lost_item", item)
}

// Posts renders every card, or the empty-state message when there are none.
func (r *Renderer) Posts(w io.Writer, posts []models.PostView, empty string) error {
	if empty == "" {
		empty = EmptyPosts
	}
	return r.execute(w, "posts", struct {
		Posts []models.PostView
		Empty string
	}{posts, empty})
}

func (r *Renderer) LostItems(w io.Writer, items []models.LostItemView, empty string) error {
	if empty == "" {
		empty = EmptyLostItems
	}
	return r.execute(w, "lost_items", struct {
		Items []models.LostItemView
		Empty string
	}{items, empty})
}

// execute renders into a buffer first so a template error never leaves a
// half-written fragment behind.
func (r *Renderer) execute(w io.Writer, name string, data any) error {
	buf := new(bytes.Buffer)
	if err := r.tmpl.ExecuteTemplate(buf, name, data); err != nil {
		return fmt.Errorf("error rendering %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
