package models

import "time"

// CartItem is one line in a user's cart. The (user, product, size, color)
// tuple is the dedup key for a line; size and color are stored as empty
// strings rather than NULLs so the composite unique index can back the
// quantity-accumulating upsert.
type CartItem struct {
	ID            uint      `gorm:"primaryKey"`
	UserID        uint      `gorm:"column:user_id;not null;uniqueIndex:uq_cart_line"`
	ProductID     uint      `gorm:"column:product_id;not null;uniqueIndex:uq_cart_line"`
	Product       *Product  `gorm:"foreignKey:ProductID"`
	Quantity      int       `gorm:"not null;default:1"`
	SelectedSize  string    `gorm:"column:selected_size;type:varchar(20);not null;default:'';uniqueIndex:uq_cart_line"`
	SelectedColor string    `gorm:"column:selected_color;type:varchar(30);not null;default:'';uniqueIndex:uq_cart_line"`
	Notes         string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}
