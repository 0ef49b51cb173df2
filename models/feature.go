package models

// FeatureSection is a homepage feature-section title. Only the title is
// authored from the dashboard; the backend defaults the rest.
type FeatureSection struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	IsActive  int    `json:"is_active"`
	IsDeleted int    `json:"is_deleted"`
	CreatedAt string `json:"created_at"`
}
