package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Prices are stored as numerics; FinalPrice is
// the price actually charged.
type Product struct {
	ID               uint             `gorm:"primaryKey"`
	Name             string           `gorm:"type:varchar(100);not null"`
	Description      string           `gorm:"type:text"`
	Price            decimal.Decimal  `gorm:"type:numeric(10,2);not null"`
	DiscountPrice    *decimal.Decimal `gorm:"column:discount_price;type:numeric(10,2)"`
	CategoryID       *uint            `gorm:"column:category_id"`
	Category         *Category        `gorm:"foreignKey:CategoryID"`
	ImageURL         string           `gorm:"column:image_url;type:varchar(200)"`
	AdditionalImages []string         `gorm:"column:additional_images;serializer:json"`
	InStock          bool             `gorm:"column:in_stock;not null;default:true"`
	StockQuantity    int              `gorm:"column:stock_quantity;not null;default:0"`
	IsFeatured       bool             `gorm:"column:is_featured;not null;default:false"`
	IsActive         bool             `gorm:"column:is_active;not null;default:true"`
	Sizes            []string         `gorm:"serializer:json"`
	Colors           []string         `gorm:"serializer:json"`
	Material         string           `gorm:"type:varchar(100)"`
	CareInstructions string           `gorm:"column:care_instructions;type:text"`
	DeliveryTime     string           `gorm:"column:delivery_time;type:varchar(50)"`
	ViewsCount       int              `gorm:"column:views_count;not null;default:0"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// FinalPrice is the discount price when present, else the base price.
func (p Product) FinalPrice() decimal.Decimal {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// HasDiscount reports whether a discount price is set.
func (p Product) HasDiscount() bool {
	return p.DiscountPrice != nil
}
