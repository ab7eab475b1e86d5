package model

import "time"

// 成员角色
const (
	GroupRoleMember    = 0
	GroupRoleModerator = 1
	GroupRoleAdmin     = 2
)

type Group struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	CreatorID uint64 `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GroupMember 成员关系，(group_id, user_id) 全局唯一
type GroupMember struct {
	ID        uint64 `gorm:"primaryKey"`
	GroupID   uint64 `gorm:"not null;index;uniqueIndex:uk_group_user"`
	UserID    uint64 `gorm:"not null;index;uniqueIndex:uk_group_user"`
	Role      int    `gorm:"not null;default:0"` // 0=member, 1=moderator, 2=admin
	CreatedAt time.Time
	UpdatedAt time.Time
}
