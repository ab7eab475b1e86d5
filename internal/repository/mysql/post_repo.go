package mysql

import (
	"context"
	"encoding/json"
	"time"

	"Iris_Blog/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

// Create 发帖，同事务写搜索索引 outbox，由 relayer 异步投递给索引服务
func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return insertSearchOutbox(tx, "post_created", post)
	})
}

// Feed 主页时间线：自己的帖子 + 关注对象的帖子，单条查询完成
// left join 关注边后按帖子分组去重，时间倒序，id 做同刻并列的次序键
// 每次请求重算，不做物化和缓存
func (r *PostRepository) Feed(ctx context.Context, userID uint64, offset, limit int) ([]model.Post, error) {
	var list []model.Post
	err := r.feedQuery(ctx, userID).
		Group("posts.id").
		Order("posts.created_at DESC, posts.id DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, err
}

// FeedCount 时间线总条数，供分页窗口组装
func (r *PostRepository) FeedCount(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.feedQuery(ctx, userID).
		Distinct("posts.id").
		Count(&n).Error
	return n, err
}

func (r *PostRepository) feedQuery(ctx context.Context, userID uint64) *gorm.DB {
	return r.DB.WithContext(ctx).
		Model(&model.Post{}).
		Joins("LEFT JOIN follow f ON f.followee_id = posts.author_id AND f.follower_id = ?", userID).
		Where("f.follower_id IS NOT NULL OR posts.author_id = ?", userID)
}

// ListAll 广场页：全量帖子时间倒序
func (r *PostRepository) ListAll(ctx context.Context, offset, limit int) ([]model.Post, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&model.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Post
	err := r.DB.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, total, err
}

// ListByAuthor 按作者分批拉取，导出任务用
func (r *PostRepository) ListByAuthor(ctx context.Context, authorID uint64, offset, limit int) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at ASC, id ASC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *PostRepository) CountByAuthor(ctx context.Context, authorID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.Post{}).
		Where("author_id = ?", authorID).
		Count(&n).Error
	return n, err
}

// 插入搜索索引事件
func insertSearchOutbox(tx *gorm.DB, event string, post *model.Post) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"post_id":    post.ID,
		"author_id":  post.AuthorID,
		"body":       post.Body,
	})
	ob := &model.SearchOutbox{
		EventType: event,
		PostID:    post.ID,
		Payload:   string(payload),
		Status:    0,
	}
	return tx.Create(ob).Error
}
