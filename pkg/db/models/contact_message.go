package models

import "time"

// ContactMessage is an inbound message from the contact form. No User
// relation; anonymous contact is allowed.
type ContactMessage struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(120)"`
	Phone        string    `gorm:"type:varchar(20)"`
	Subject      string    `gorm:"type:varchar(200)"`
	Message      string    `gorm:"type:text;not null"`
	IsRead       bool      `gorm:"column:is_read;not null;default:false"`
	Replied      bool      `gorm:"not null;default:false"`
	ReplyMessage string    `gorm:"column:reply_message;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
