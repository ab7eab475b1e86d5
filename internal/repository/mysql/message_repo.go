package mysql

import (
	"context"
	"time"

	"Iris_Blog/internal/model"

	"gorm.io/gorm"
)

type MessageRepository struct {
	DB *gorm.DB
}

// Send 发私信，同一事务里刷新收件人的未读数通知
func (r *MessageRepository) Send(ctx context.Context, m *model.Message) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		var recipient model.User
		if err := tx.First(&recipient, m.RecipientID).Error; err != nil {
			return err
		}
		unread, err := countUnread(tx, &recipient)
		if err != nil {
			return err
		}
		n := &NotificationRepository{DB: tx}
		return n.Notify(ctx, m.RecipientID, model.NotificationUnreadMessageCount, unread)
	})
}

// ListByRecipient 收件箱分页列表，新消息在前
func (r *MessageRepository) ListByRecipient(ctx context.Context, userID uint64, offset, limit int) ([]model.Message, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&model.Message{}).
		Where("recipient_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Message
	err := r.DB.WithContext(ctx).
		Where("recipient_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, total, err
}

// MarkRead 推进已读水位并把未读数通知清零
func (r *MessageRepository) MarkRead(ctx context.Context, userID uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).
			Where("id = ?", userID).
			Update("last_message_read_time", time.Now()).Error; err != nil {
			return err
		}
		n := &NotificationRepository{DB: tx}
		return n.Notify(ctx, userID, model.NotificationUnreadMessageCount, 0)
	})
}

// CountUnread 未读私信数：已读水位之后收到的消息
func (r *MessageRepository) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	var user model.User
	if err := r.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		return 0, err
	}
	return countUnread(r.DB.WithContext(ctx), &user)
}

func countUnread(tx *gorm.DB, user *model.User) (int64, error) {
	since := time.Time{}
	if user.LastMessageReadTime != nil {
		since = *user.LastMessageReadTime
	}
	var n int64
	err := tx.Model(&model.Message{}).
		Where("recipient_id = ? AND created_at > ?", user.ID, since).
		Count(&n).Error
	return n, err
}
