package service

import (
	"context"
	"encoding/json"
	"time"

	"Iris_Blog/internal/logger"
	"Iris_Blog/internal/model"
	"Iris_Blog/internal/pkg"
	"Iris_Blog/internal/repository/mysql"
)

// ExportPostsJob 导出任务的逻辑名，单飞检查按它聚合
const ExportPostsJob = "export_posts"

const exportBatchSize = 100

type exportedPost struct {
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}

// ExportService 帖子导出。runner 部分站在外部 job runner 的位置，
// 只通过任务台账的公开回调（ReportProgress / Finalize）汇报进度
type ExportService struct {
	tasks *TaskService
	posts *mysql.PostRepository
	users *mysql.UserRepository
	smtp  pkg.SMTPConfig
}

func NewExportService(smtp pkg.SMTPConfig) *ExportService {
	return &ExportService{
		tasks: NewTaskService(),
		posts: &mysql.PostRepository{DB: mysql.DB},
		users: &mysql.UserRepository{DB: mysql.DB},
		smtp:  smtp,
	}
}

// LaunchExport 登记导出任务并异步执行；同名任务进行中时返回 ErrTaskInProgress
func (s *ExportService) LaunchExport(ctx context.Context, userID uint64) (*model.Task, error) {
	task, err := s.tasks.Launch(ctx, userID, ExportPostsJob, "导出全部帖子")
	if err != nil {
		return nil, err
	}
	go s.run(task.ID, userID)
	return task, nil
}

// run 分批拉帖子、汇报进度、邮寄归档、收口
func (s *ExportService) run(taskID string, userID uint64) {
	ctx := context.Background()
	log := logger.Log.WithField("task_id", taskID)

	defer func() {
		// 成功失败都收口：置 complete 并补发 progress=100
		if err := s.tasks.Finalize(ctx, taskID); err != nil {
			log.WithError(err).Error("export finalize failed")
		}
	}()

	user, err := s.users.FindByID(userID)
	if err != nil {
		log.WithError(err).Error("export user lookup failed")
		return
	}
	total, err := s.posts.CountByAuthor(ctx, userID)
	if err != nil {
		log.WithError(err).Error("export count failed")
		return
	}

	exported := make([]exportedPost, 0, total)
	for offset := 0; ; offset += exportBatchSize {
		batch, err := s.posts.ListByAuthor(ctx, userID, offset, exportBatchSize)
		if err != nil {
			log.WithError(err).Error("export batch failed")
			return
		}
		for _, p := range batch {
			exported = append(exported, exportedPost{Body: p.Body, Timestamp: p.CreatedAt})
		}
		if total > 0 {
			// 100 留给 Finalize
			progress := int(int64(len(exported)) * 100 / total)
			if progress > 99 {
				progress = 99
			}
			if err := s.tasks.ReportProgress(ctx, taskID, progress); err != nil {
				log.WithError(err).Warn("export progress report failed")
			}
		}
		if len(batch) < exportBatchSize {
			break
		}
	}

	data, err := json.Marshal(exported)
	if err != nil {
		log.WithError(err).Error("export marshal failed")
		return
	}
	html := pkg.ExportReadyHTML(user.Username, int64(len(exported)))
	if err := pkg.SendEmailWithAttachment(s.smtp, user.Email, "帖子导出完成", html, "posts.json", data); err != nil {
		log.WithError(err).Error("export mail failed")
		return
	}
	log.WithField("count", len(exported)).Info("export finished")
}
