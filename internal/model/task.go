package model

import "time"

// Task 后台任务台账，主键就是外部 job runner 的任务句柄
// 进度不落库，只通过 task_progress 通知下发；complete 不区分成功失败
type Task struct {
	ID          string `gorm:"primaryKey;size:36"`
	UserID      uint64 `gorm:"not null;index:idx_task_user_name,priority:1"`
	Name        string `gorm:"size:128;not null;index:idx_task_user_name,priority:2"`
	Description string `gorm:"size:128"`
	Complete    bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
}
