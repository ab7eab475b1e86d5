package mysql

import (
	"context"
	"errors"

	"Iris_Blog/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GroupRepository struct {
	DB *gorm.DB
}

type GroupMemberRepository struct {
	DB *gorm.DB
}

// MemberView 成员列表条目，带上用户名
type MemberView struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	Role     int    `json:"role"`
}

// RoleCount 管理角色统计（普通成员不计入）
type RoleCount struct {
	Role  int   `json:"role"`
	Count int64 `json:"count"`
}

// Create 建群并让创建者以管理员身份加入，同一事务
func (r *GroupRepository) Create(ctx context.Context, g *model.Group) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(g).Error; err != nil {
			return err
		}
		m := &GroupMemberRepository{DB: tx}
		return m.Join(ctx, &model.GroupMember{
			GroupID: g.ID,
			UserID:  g.CreatorID,
			Role:    model.GroupRoleAdmin,
		})
	})
}

// FindByID 不存在返回 nil
func (r *GroupRepository) FindByID(ctx context.Context, id uint64) (*model.Group, error) {
	var g model.Group
	err := r.DB.WithContext(ctx).First(&g, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Rename 改名，返回是否命中
func (r *GroupRepository) Rename(ctx context.Context, id uint64, name string) (bool, error) {
	tx := r.DB.WithContext(ctx).Model(&model.Group{}).Where("id = ?", id).
		Update("name", name)
	return tx.RowsAffected > 0, tx.Error
}

// Delete 幂等删群：群和成员关系一起删，已不存在也视为成功
func (r *GroupRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&model.GroupMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Group{}, id).Error
	})
}

// List 群分页列表，附带总数
func (r *GroupRepository) List(ctx context.Context, offset, limit int) ([]model.Group, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&model.Group{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Group
	err := r.DB.WithContext(ctx).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, total, err
}

// Join 幂等入群：(group_id, user_id) 已存在则不报错
func (r *GroupMemberRepository) Join(ctx context.Context, member *model.GroupMember) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(member).Error
}

// Leave 幂等退群
func (r *GroupMemberRepository) Leave(ctx context.Context, groupID, userID uint64) error {
	return r.DB.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&model.GroupMember{}).Error
}

func (r *GroupMemberRepository) IsMember(ctx context.Context, groupID, userID uint64) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&n).Error
	return n > 0, err
}

// UpdateRole 调整成员角色，返回是否命中
func (r *GroupMemberRepository) UpdateRole(ctx context.Context, groupID, userID uint64, role int) (bool, error) {
	tx := r.DB.WithContext(ctx).Model(&model.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Update("role", role)
	return tx.RowsAffected > 0, tx.Error
}

// ListMembers 成员分页列表，连用户表取用户名
func (r *GroupMemberRepository) ListMembers(ctx context.Context, groupID uint64, offset, limit int) ([]MemberView, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&model.GroupMember{}).
		Where("group_id = ?", groupID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []MemberView
	err := r.DB.WithContext(ctx).Model(&model.GroupMember{}).
		Select("group_members.user_id", "users.username", "group_members.role").
		Joins("JOIN users ON users.id = group_members.user_id").
		Where("group_members.group_id = ?", groupID).
		Order("group_members.id ASC").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

// RoleCounts 管理/版主人数统计，普通成员不参与聚合
func (r *GroupMemberRepository) RoleCounts(ctx context.Context, groupID uint64) ([]RoleCount, error) {
	var rows []RoleCount
	err := r.DB.WithContext(ctx).Model(&model.GroupMember{}).
		Select("role", "COUNT(*) AS count").
		Where("group_id = ? AND role <> ?", groupID, model.GroupRoleMember).
		Group("role").
		Order("role DESC").
		Find(&rows).Error
	return rows, err
}
