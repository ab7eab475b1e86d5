package model

import "time"

// Follow 有向关注边，(follower_id, followee_id) 全局唯一
// 自关注不在这一层拦截，由 service 校验
type Follow struct {
	ID         uint64 `gorm:"primaryKey"`
	FollowerID uint64 `gorm:"not null;index:idx_follower_id;uniqueIndex:uk_follower_followee,priority:1"`
	FolloweeID uint64 `gorm:"not null;index:idx_followee_id;uniqueIndex:uk_follower_followee,priority:2"`
	CreatedAt  time.Time
}

// TableName sets table name for Follow
func (Follow) TableName() string {
	return "follow"
}
