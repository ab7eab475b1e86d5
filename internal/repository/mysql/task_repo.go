package mysql

import (
	"context"
	"errors"

	"Iris_Blog/internal/model"

	"gorm.io/gorm"
)

type TaskRepository struct {
	DB *gorm.DB
}

// Create 新建任务台账，并在同一事务里投递 progress=0 通知
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		n := &NotificationRepository{DB: tx}
		return n.Notify(ctx, task.UserID, model.NotificationTaskProgress, map[string]any{
			"task_id":  task.ID,
			"progress": 0,
		})
	})
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.DB.WithContext(ctx).First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetInProgress 软单飞检查：取该用户同名且未完成的第一条任务，没有返回 nil
func (r *TaskRepository) GetInProgress(ctx context.Context, userID uint64, name string) (*model.Task, error) {
	var task model.Task
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND name = ? AND complete = ?", userID, name, false).
		First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Finalize 幂等收口：置 complete 并投递 progress=100
// 外部 runner 重试收口时重复调用无害，complete 已置位只会重发同样的通知
func (r *TaskRepository) Finalize(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task model.Task
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			return err
		}
		if !task.Complete {
			if err := tx.Model(&model.Task{}).
				Where("id = ? AND complete = ?", id, false).
				Update("complete", true).Error; err != nil {
				return err
			}
		}
		n := &NotificationRepository{DB: tx}
		return n.Notify(ctx, task.UserID, model.NotificationTaskProgress, map[string]any{
			"task_id":  id,
			"progress": 100,
		})
	})
}
