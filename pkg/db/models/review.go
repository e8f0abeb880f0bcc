package models

import "time"

// Review is a customer rating for a product, optionally tied to the order it
// came from. Reviews stay invisible on product pages until approved.
type Review struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"column:user_id;not null;index"`
	User       *User     `gorm:"foreignKey:UserID"`
	ProductID  uint      `gorm:"column:product_id;not null;index"`
	OrderID    *uint     `gorm:"column:order_id"`
	Rating     int       `gorm:"not null"`
	Title      string    `gorm:"type:varchar(200)"`
	Comment    string    `gorm:"type:text"`
	IsApproved bool      `gorm:"column:is_approved;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
