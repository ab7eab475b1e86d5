package model

// 通道名常量，调用方按名轮询
const (
	NotificationTaskProgress       = "task_progress"
	NotificationUnreadMessageCount = "unread_message_count"
)

// Notification 单槽信箱：每个 (user_id, name) 至多一条存活记录
// 写入走先删后插，时间戳前移让客户端游标能看到最新值
type Notification struct {
	ID     uint64 `gorm:"primaryKey"`
	UserID uint64 `gorm:"not null;index:idx_user_name,priority:1"`
	Name   string `gorm:"size:128;not null;index:idx_user_name,priority:2"`
	// 秒级墙钟时间，只保证不减，允许同刻并列
	Timestamp float64 `gorm:"not null;index"`
	Payload   string  `gorm:"type:json;not null"`
}
