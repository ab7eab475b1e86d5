package mysql

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"Iris_Blog/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

// nowSeconds 秒级浮点墙钟，和通知游标同量纲
func nowSeconds() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}

// Notify 单槽信箱写入：同一 (user, name) 先删后插，最新值覆盖
// 删插必须在同一事务里，失败整体回滚，不会出现半套状态
func (r *NotificationRepository) Notify(ctx context.Context, userID uint64, name string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND name = ?", userID, name).
			Delete(&model.Notification{}).Error; err != nil {
			return err
		}
		return tx.Create(&model.Notification{
			UserID:    userID,
			Name:      name,
			Timestamp: nowSeconds(),
			Payload:   string(payload),
		}).Error
	})
}

// Poll 增量轮询：返回 timestamp > since 的通知，按时间升序
// 游标由客户端持有（记录见过的最大时间戳），服务端无会话状态
func (r *NotificationRepository) Poll(ctx context.Context, userID uint64, since float64) ([]model.Notification, error) {
	var list []model.Notification
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND timestamp > ?", userID, since).
		Order("timestamp ASC, id ASC").
		Find(&list).Error
	return list, err
}

// Get 读取某个通道当前槽位，不存在返回 nil
func (r *NotificationRepository) Get(ctx context.Context, userID uint64, name string) (*model.Notification, error) {
	var n model.Notification
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}
