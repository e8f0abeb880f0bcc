package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/atelierhq/storefront-backend/pkg/enums"
)

// Order is an immutable record of a checkout. The customer contact fields
// are snapshotted from the checkout form, not joined from the User row, so
// later profile edits do not rewrite order history.
type Order struct {
	ID              uint                `gorm:"primaryKey"`
	OrderNumber     string              `gorm:"column:order_number;type:varchar(20);not null;uniqueIndex:uq_orders_number"`
	UserID          uint                `gorm:"column:user_id;not null;index"`
	TotalAmount     decimal.Decimal     `gorm:"column:total_amount;type:numeric(12,2);not null"`
	Status          enums.OrderStatus   `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentStatus   enums.PaymentStatus `gorm:"column:payment_status;type:varchar(20);not null;default:'pending'"`
	PaymentMethod   string              `gorm:"column:payment_method;type:varchar(30)"`
	CustomerName    string              `gorm:"column:customer_name;type:varchar(100);not null"`
	CustomerPhone   string              `gorm:"column:customer_phone;type:varchar(20);not null"`
	CustomerAddress string              `gorm:"column:customer_address;type:text;not null"`
	DeliveryDate    *time.Time          `gorm:"column:delivery_date"`
	Notes           string              `gorm:"type:text"`
	AdminNotes      string              `gorm:"column:admin_notes;type:text"`
	Items           []OrderItem         `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
