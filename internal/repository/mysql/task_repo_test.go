package mysql

import (
	"context"
	"encoding/json"
	"testing"

	"Iris_Blog/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type progressPayload struct {
	TaskID   string `json:"task_id"`
	Progress int    `json:"progress"`
}

func taskProgressPayload(t *testing.T, db *gorm.DB, userID uint64) progressPayload {
	t.Helper()
	repo := &NotificationRepository{DB: db}
	n, err := repo.Get(context.Background(), userID, model.NotificationTaskProgress)
	require.NoError(t, err)
	require.NotNil(t, n)
	var p progressPayload
	require.NoError(t, json.Unmarshal([]byte(n.Payload), &p))
	return p
}

func TestTaskCreateEmitsZeroProgress(t *testing.T) {
	db := newTestDB(t)
	repo := &TaskRepository{DB: db}
	ctx := context.Background()

	u := seedUser(t, db, "alice")
	task := &model.Task{ID: "job-1", UserID: u.ID, Name: "export_posts", Description: "导出"}
	require.NoError(t, repo.Create(ctx, task))

	p := taskProgressPayload(t, db, u.ID)
	assert.Equal(t, "job-1", p.TaskID)
	assert.Equal(t, 0, p.Progress)
}

func TestTaskGetInProgress(t *testing.T) {
	db := newTestDB(t)
	repo := &TaskRepository{DB: db}
	ctx := context.Background()

	u := seedUser(t, db, "alice")

	got, err := repo.GetInProgress(ctx, u.ID, "export_posts")
	require.NoError(t, err)
	assert.Nil(t, got)

	task := &model.Task{ID: "job-1", UserID: u.ID, Name: "export_posts"}
	require.NoError(t, repo.Create(ctx, task))

	got, err = repo.GetInProgress(ctx, u.ID, "export_posts")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "job-1", got.ID)

	require.NoError(t, repo.Finalize(ctx, "job-1"))

	got, err = repo.GetInProgress(ctx, u.ID, "export_posts")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTaskFinalizeIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := &TaskRepository{DB: db}
	ctx := context.Background()

	u := seedUser(t, db, "alice")
	task := &model.Task{ID: "job-1", UserID: u.ID, Name: "export_posts"}
	require.NoError(t, repo.Create(ctx, task))

	// runner 重试收口，两次调用结果一致
	require.NoError(t, repo.Finalize(ctx, "job-1"))
	require.NoError(t, repo.Finalize(ctx, "job-1"))

	got, err := repo.FindByID(ctx, "job-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Complete)

	p := taskProgressPayload(t, db, u.ID)
	assert.Equal(t, "job-1", p.TaskID)
	assert.Equal(t, 100, p.Progress)
}
