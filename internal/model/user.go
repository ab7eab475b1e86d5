package model

import "time"

type User struct {
	ID       uint64 `gorm:"primaryKey"`
	Username string `gorm:"uniqueIndex;size:64;not null"`
	// 哈希值不随列表接口出参
	Password string `gorm:"size:255;not null" json:"-"`
	Email    string `gorm:"uniqueIndex;size:120;not null"`
	AboutMe  string `gorm:"size:140"`
	LastSeen time.Time
	// 仅用于计算未读私信数，空值表示从未读过
	LastMessageReadTime *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
