package models

// Category is a product category record on the remote backend. Timestamps
// arrive as "YYYY-MM-DD HH:MM:SS" strings and are kept verbatim; that format
// orders correctly as text.
type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Image     string `json:"image"`
	IsDeleted int    `json:"is_deleted"`
	CreatedAt string `json:"created_at"`
}

// StyleOption is a style attribute belonging to one category.
type StyleOption struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
	IsDeleted  int    `json:"is_deleted"`
}

// MetalOption is a metal attribute belonging to one category.
type MetalOption struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
	IsDeleted  int    `json:"is_deleted"`
}

// CategoryDetail is a category enriched with its option collections for list
// badges and the edit form.
type CategoryDetail struct {
	Category
	Styles []StyleOption `json:"styles"`
	Metals []MetalOption `json:"metals"`
}

func (d CategoryDetail) StyleCount() int { return len(d.Styles) }
func (d CategoryDetail) MetalCount() int { return len(d.Metals) }
