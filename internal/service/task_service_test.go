package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"Iris_Blog/internal/model"
	"Iris_Blog/internal/repository/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTaskService 内存库上的裸服务，不挂启动锁（退化为软单飞）
func newTaskService(t *testing.T) (*TaskService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Notification{}, &model.Task{}))

	svc := &TaskService{
		repo:  &mysql.TaskRepository{DB: db},
		notif: &mysql.NotificationRepository{DB: db},
	}
	return svc, db
}

func seedTaskUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	u := &model.User{Username: "alice", Password: "x", Email: "alice@example.com"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func lastProgress(t *testing.T, db *gorm.DB, userID uint64) (string, int) {
	t.Helper()
	repo := &mysql.NotificationRepository{DB: db}
	n, err := repo.Get(context.Background(), userID, model.NotificationTaskProgress)
	require.NoError(t, err)
	require.NotNil(t, n)
	var p struct {
		TaskID   string `json:"task_id"`
		Progress int    `json:"progress"`
	}
	require.NoError(t, json.Unmarshal([]byte(n.Payload), &p))
	return p.TaskID, p.Progress
}

func TestTaskLifecycle(t *testing.T) {
	svc, db := newTaskService(t)
	ctx := context.Background()
	u := seedTaskUser(t, db)

	task, err := svc.Launch(ctx, u.ID, "export_posts", "导出全部帖子")
	require.NoError(t, err)
	require.NotEmpty(t, task.ID)

	got, err := svc.InProgress(ctx, u.ID, "export_posts")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, task.ID, got.ID)

	require.NoError(t, svc.ReportProgress(ctx, task.ID, 30))
	require.NoError(t, svc.ReportProgress(ctx, task.ID, 70))

	st, err := svc.Status(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, st.Ready)
	assert.Equal(t, 70, st.Progress)

	require.NoError(t, svc.Finalize(ctx, task.ID))

	id, progress := lastProgress(t, db, u.ID)
	assert.Equal(t, task.ID, id)
	assert.Equal(t, 100, progress)

	st, err = svc.Status(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, st.Ready)
	assert.Equal(t, 100, st.Progress)

	got, err = svc.InProgress(ctx, u.ID, "export_posts")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLaunchSingleFlight(t *testing.T) {
	svc, db := newTaskService(t)
	ctx := context.Background()
	u := seedTaskUser(t, db)

	first, err := svc.Launch(ctx, u.ID, "export_posts", "")
	require.NoError(t, err)

	// 同名任务进行中，再次启动被拒
	_, err = svc.Launch(ctx, u.ID, "export_posts", "")
	assert.ErrorIs(t, err, ErrTaskInProgress)

	// 别的任务名不受影响
	_, err = svc.Launch(ctx, u.ID, "reindex", "")
	require.NoError(t, err)

	// 收口后可以再启动
	require.NoError(t, svc.Finalize(ctx, first.ID))
	_, err = svc.Launch(ctx, u.ID, "export_posts", "")
	require.NoError(t, err)
}

func TestReportProgressValidation(t *testing.T) {
	svc, db := newTaskService(t)
	ctx := context.Background()
	u := seedTaskUser(t, db)

	task, err := svc.Launch(ctx, u.ID, "export_posts", "")
	require.NoError(t, err)

	assert.Error(t, svc.ReportProgress(ctx, task.ID, -1))
	assert.Error(t, svc.ReportProgress(ctx, task.ID, 101))
	assert.ErrorIs(t, svc.ReportProgress(ctx, "no-such-task", 10), ErrTaskNotFound)

	_, err = svc.Status(ctx, "no-such-task")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}
