package service

import (
	"context"
	"encoding/json"

	"Iris_Blog/internal/repository/mysql"
)

// NotificationView 轮询响应条目，data 原样透传 payload
type NotificationView struct {
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data"`
	Timestamp float64         `json:"timestamp"`
}

type NotificationService struct {
	repo *mysql.NotificationRepository
}

func NewNotificationService() *NotificationService {
	return &NotificationService{
		repo: &mysql.NotificationRepository{DB: mysql.DB},
	}
}

// Poll 返回 since 之后的通知（升序）；客户端记下最大时间戳作为下次游标
func (s *NotificationService) Poll(ctx context.Context, userID uint64, since float64) ([]NotificationView, error) {
	rows, err := s.repo.Poll(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	views := make([]NotificationView, 0, len(rows))
	for _, n := range rows {
		views = append(views, NotificationView{
			Name:      n.Name,
			Data:      json.RawMessage(n.Payload),
			Timestamp: n.Timestamp,
		})
	}
	return views, nil
}
