package models

// Category groups products for browsing. The per-category product count is
// derived at query time, never stored.
type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"type:varchar(50);not null;uniqueIndex:uq_categories_name"`
	Description string `gorm:"type:text"`
	ImageURL    string `gorm:"column:image_url;type:varchar(200)"`
	IsActive    bool   `gorm:"column:is_active;not null;default:true"`
	SortOrder   int    `gorm:"column:sort_order;not null;default:0"`
}
