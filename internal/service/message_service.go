package service

import (
	"context"
	"errors"

	"Iris_Blog/internal/model"
	"Iris_Blog/internal/pkg"
	"Iris_Blog/internal/repository/mysql"

	"gorm.io/gorm"
)

var ErrRecipientNotFound = errors.New("recipient not found")

type MessageService struct {
	repo  *mysql.MessageRepository
	users *mysql.UserRepository
}

func NewMessageService() *MessageService {
	return &MessageService{
		repo:  &mysql.MessageRepository{DB: mysql.DB},
		users: &mysql.UserRepository{DB: mysql.DB},
	}
}

// Send 发私信：写消息和未读数通知在同一事务里落库
func (s *MessageService) Send(ctx context.Context, senderID uint64, recipientName, body string) (*model.Message, error) {
	if body == "" {
		return nil, errors.New("body required")
	}
	if len([]rune(body)) > maxPostBody {
		return nil, errors.New("body too long")
	}
	recipient, err := s.users.FindByUsername(recipientName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}
	if recipient.ID == senderID {
		return nil, errors.New("cannot message self")
	}

	m := &model.Message{
		SenderID:    senderID,
		RecipientID: recipient.ID,
		Body:        body,
	}
	if err := s.repo.Send(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Inbox 收件箱：先推进已读水位（未读数通知清零），再分页返回
func (s *MessageService) Inbox(ctx context.Context, userID uint64, page, perPage int) (pkg.Page[model.Message], error) {
	if err := s.repo.MarkRead(ctx, userID); err != nil {
		return pkg.Page[model.Message]{}, err
	}
	page, perPage = pkg.NormalizePage(page, perPage, pkg.DefaultPerPage)
	list, total, err := s.repo.ListByRecipient(ctx, userID, pkg.Offset(page, perPage), perPage)
	if err != nil {
		return pkg.Page[model.Message]{}, err
	}
	return pkg.NewPage(list, total, page, perPage), nil
}

func (s *MessageService) UnreadCount(ctx context.Context, userID uint64) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}
