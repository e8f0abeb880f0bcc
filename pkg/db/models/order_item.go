package models

import "github.com/shopspring/decimal"

// OrderItem snapshots one cart line at checkout time. Price is the product's
// final price at that instant and must never change afterwards, whatever
// happens to the product.
type OrderItem struct {
	ID            uint            `gorm:"primaryKey"`
	OrderID       uint            `gorm:"column:order_id;not null;index"`
	ProductID     uint            `gorm:"column:product_id;not null"`
	Product       *Product        `gorm:"foreignKey:ProductID"`
	Quantity      int             `gorm:"not null"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	SelectedSize  string          `gorm:"column:selected_size;type:varchar(20);not null;default:''"`
	SelectedColor string          `gorm:"column:selected_color;type:varchar(30);not null;default:''"`
	Notes         string          `gorm:"type:text"`
}
