package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"Iris_Blog/internal/model"
	"Iris_Blog/internal/repository/mysql"
	"Iris_Blog/internal/repository/redis"

	"github.com/google/uuid"
)

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrTaskInProgress = errors.New("task already in progress")
)

// TaskStatus 任务状态视图；successful 不带独立含义，台账不记录成败结果
type TaskStatus struct {
	Ready      bool `json:"ready"`
	Successful bool `json:"successful"`
	Progress   int  `json:"progress"`
}

type TaskService struct {
	repo  *mysql.TaskRepository
	notif *mysql.NotificationRepository
	lock  *redis.TaskLock
}

func NewTaskService() *TaskService {
	return &TaskService{
		repo:  &mysql.TaskRepository{DB: mysql.DB},
		notif: &mysql.NotificationRepository{DB: mysql.DB},
		lock:  &redis.TaskLock{},
	}
}

// Launch 登记任务并发出 progress=0 通知，返回的任务 id 交给外部 runner
// 启动锁拦住同名并发启动；锁缺失或抢占失败时退化为软单飞检查（任务幂等，重复启动无害）
func (s *TaskService) Launch(ctx context.Context, userID uint64, name, description string) (*model.Task, error) {
	if userID == 0 || name == "" {
		return nil, errors.New("invalid task params")
	}

	if s.lock != nil && redis.Client != nil {
		token := fmt.Sprintf("%d-%s-%d", userID, name, time.Now().UnixNano())
		if got, _ := s.lock.Acquire(ctx, userID, name, token); got {
			defer s.lock.Release(ctx, userID, name, token)
		}
	}

	if t, err := s.repo.GetInProgress(ctx, userID, name); err != nil {
		return nil, err
	} else if t != nil {
		return nil, ErrTaskInProgress
	}

	task := &model.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Description: description,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ReportProgress 外部 runner 回调：不改任务行，只刷新 task_progress 槽位
// 回调可能乱序或重复到达，覆盖语义天然容忍
func (s *TaskService) ReportProgress(ctx context.Context, taskID string, progress int) error {
	if progress < 0 || progress > 100 {
		return errors.New("progress out of range")
	}
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrTaskNotFound
	}
	return s.notif.Notify(ctx, task.UserID, model.NotificationTaskProgress, map[string]any{
		"task_id":  taskID,
		"progress": progress,
	})
}

// Finalize 幂等收口，成功失败都走这里；结果要从 runner 侧旁路获取
func (s *TaskService) Finalize(ctx context.Context, taskID string) error {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrTaskNotFound
	}
	return s.repo.Finalize(ctx, taskID)
}

// InProgress 软单飞查询
func (s *TaskService) InProgress(ctx context.Context, userID uint64, name string) (*model.Task, error) {
	return s.repo.GetInProgress(ctx, userID, name)
}

// Status 任务状态：进度取自 task_progress 槽位，槽位已被别的任务覆盖时报 0
func (s *TaskService) Status(ctx context.Context, taskID string) (*TaskStatus, error) {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}

	st := &TaskStatus{Ready: task.Complete, Successful: task.Complete}
	if task.Complete {
		st.Progress = 100
		return st, nil
	}
	n, err := s.notif.Get(ctx, task.UserID, model.NotificationTaskProgress)
	if err != nil {
		return nil, err
	}
	if n != nil {
		var p struct {
			TaskID   string `json:"task_id"`
			Progress int    `json:"progress"`
		}
		if json.Unmarshal([]byte(n.Payload), &p) == nil && p.TaskID == taskID {
			st.Progress = p.Progress
		}
	}
	return st, nil
}
