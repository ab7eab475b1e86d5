package model

import "time"

// Message 用户间私信
type Message struct {
	ID          uint64    `gorm:"primaryKey"`
	SenderID    uint64    `gorm:"not null;index:idx_sender_id"`
	RecipientID uint64    `gorm:"not null;index:idx_recipient_time,priority:1"`
	Body        string    `gorm:"size:140;not null"`
	CreatedAt   time.Time `gorm:"index:idx_recipient_time,priority:2"`
}
