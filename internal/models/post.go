package models

// PostView is the canonical display record for a community post.
type PostView struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Body          string `json:"body"`
	Snippet       string `json:"snippet"`
	Category      string `json:"category"`
	CategoryLabel string `json:"category_label"`
	ImageURL      string `json:"image_url,omitempty"`
	HasImage      bool   `json:"has_image"`
	Author        string `json:"author"`
	Date          string `json:"date"`
	Views         int    `json:"views"`
	Replies       int    `json:"replies"`
	DetailPath    string `json:"detail_path"`
}
