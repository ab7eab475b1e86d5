package model

import "time"

// Post 创建后不可修改，不支持编辑
type Post struct {
	ID       uint64 `gorm:"primaryKey"`
	AuthorID uint64 `gorm:"not null;index:idx_author_time,priority:1"`
	Body     string `gorm:"size:140;not null"`
	// 上游语言检测给出的标签，可为空
	Language  string    `gorm:"size:5"`
	CreatedAt time.Time `gorm:"index:idx_author_time,priority:2"`
}

// SearchOutbox 搜索索引事件监控表
type SearchOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:16;not null"` // post_created
	PostID    uint64 `gorm:"not null"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SearchOutbox) TableName() string { return "search_outbox" }
