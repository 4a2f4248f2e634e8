package models

// LostItemView is the canonical display record for a lost & found item.
type LostItemView struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Snippet       string `json:"snippet"`
	Category      string `json:"category"`
	CategoryLabel string `json:"category_label"`
	ImageURL      string `json:"image_url,omitempty"`
	HasImage      bool   `json:"has_image"`
	Location      string `json:"location"`
	Date          string `json:"date"`
	DateAdded     string `json:"date_added"`
	Contact       string `json:"contact"`
	Status        string `json:"status"`
	Views         int    `json:"views"`
	DetailPath    string `json:"detail_path"`
}
