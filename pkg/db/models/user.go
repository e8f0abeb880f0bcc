package models

import "time"

// User represents a storefront customer (or the shop admin).
type User struct {
	ID           uint       `gorm:"primaryKey"`
	Name         string     `gorm:"type:varchar(100);not null"`
	Email        string     `gorm:"type:varchar(120);not null;uniqueIndex:uq_users_email"`
	Phone        string     `gorm:"type:varchar(20)"`
	PasswordHash string     `gorm:"column:password_hash;type:varchar(200)"`
	Address      string     `gorm:"type:text"`
	City         string     `gorm:"type:varchar(50)"`
	IsAdmin      bool       `gorm:"column:is_admin;not null;default:false"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}
