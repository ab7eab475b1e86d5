package mysql

import (
	"context"

	"Iris_Blog/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepository struct {
	DB *gorm.DB
}

// Follow 幂等插入关注边：(follower_id, followee_id) 已存在则不报错
func (r *FollowRepository) Follow(ctx context.Context, followerID, followeeID uint64) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "follower_id"}, {Name: "followee_id"}},
		DoNothing: true,
	}).Create(&model.Follow{
		FollowerID: followerID,
		FolloweeID: followeeID,
	}).Error
}

// Unfollow 幂等删除：边不存在也视为成功
func (r *FollowRepository) Unfollow(ctx context.Context, followerID, followeeID uint64) error {
	return r.DB.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&model.Follow{}).Error
}

// IsFollowing 判断是否关注
func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// FollowerCount 粉丝数，每次实时扫边表，不走缓存列
func (r *FollowRepository) FollowerCount(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.Follow{}).
		Where("followee_id = ?", userID).
		Count(&n).Error
	return n, err
}

// FollowingCount 关注数，同上
func (r *FollowRepository) FollowingCount(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ?", userID).
		Count(&n).Error
	return n, err
}

// ListFollowers 粉丝分页列表，附带总数供分页窗口组装
func (r *FollowRepository) ListFollowers(ctx context.Context, userID uint64, offset, limit int) ([]model.User, int64, error) {
	total, err := r.FollowerCount(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	var rows []model.User
	err = r.DB.WithContext(ctx).
		Model(&model.User{}).
		Joins("JOIN follow f ON f.follower_id = users.id").
		Where("f.followee_id = ?", userID).
		Order("f.id DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

// ListFollowing 关注分页列表
func (r *FollowRepository) ListFollowing(ctx context.Context, userID uint64, offset, limit int) ([]model.User, int64, error) {
	total, err := r.FollowingCount(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	var rows []model.User
	err = r.DB.WithContext(ctx).
		Model(&model.User{}).
		Joins("JOIN follow f ON f.followee_id = users.id").
		Where("f.follower_id = ?", userID).
		Order("f.id DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	return rows, total, err
}
