package mysql

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"Iris_Blog/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifySingleSlot(t *testing.T) {
	db := newTestDB(t)
	repo := &NotificationRepository{DB: db}
	ctx := context.Background()

	u := seedUser(t, db, "alice")

	require.NoError(t, repo.Notify(ctx, u.ID, "x", map[string]any{"v": 1}))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, repo.Notify(ctx, u.ID, "x", map[string]any{"v": 2}))

	// 同名通知只留最新一条
	var rows []model.Notification
	require.NoError(t, db.Where("user_id = ? AND name = ?", u.ID, "x").Find(&rows).Error)
	require.Len(t, rows, 1)

	var payload map[string]int
	require.NoError(t, json.Unmarshal([]byte(rows[0].Payload), &payload))
	assert.Equal(t, 2, payload["v"])

	// 轮询也只看到一次
	list, err := repo.Poll(ctx, u.ID, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "x", list[0].Name)
}

func TestPollCursor(t *testing.T) {
	db := newTestDB(t)
	repo := &NotificationRepository{DB: db}
	ctx := context.Background()

	u := seedUser(t, db, "alice")

	require.NoError(t, repo.Notify(ctx, u.ID, "a", 1))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, repo.Notify(ctx, u.ID, "b", 2))

	list, err := repo.Poll(ctx, u.ID, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// 升序返回
	assert.Equal(t, "a", list[0].Name)
	assert.Equal(t, "b", list[1].Name)
	assert.LessOrEqual(t, list[0].Timestamp, list[1].Timestamp)

	// 以见过的最大时间戳为游标，旧通知不再出现
	cursor := list[1].Timestamp
	list, err = repo.Poll(ctx, u.ID, cursor)
	require.NoError(t, err)
	assert.Empty(t, list)

	time.Sleep(2 * time.Millisecond)
	require.NoError(t, repo.Notify(ctx, u.ID, "c", 3))
	list, err = repo.Poll(ctx, u.ID, cursor)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "c", list[0].Name)
}

func TestNotifyTimestampAdvances(t *testing.T) {
	db := newTestDB(t)
	repo := &NotificationRepository{DB: db}
	ctx := context.Background()

	u := seedUser(t, db, "alice")

	require.NoError(t, repo.Notify(ctx, u.ID, "x", 1))
	first, err := repo.Get(ctx, u.ID, "x")
	require.NoError(t, err)
	require.NotNil(t, first)

	time.Sleep(2 * time.Millisecond)
	require.NoError(t, repo.Notify(ctx, u.ID, "x", 2))
	second, err := repo.Get(ctx, u.ID, "x")
	require.NoError(t, err)
	require.NotNil(t, second)

	// 先删后插让时间戳前移，老游标之后能看到新值
	assert.Greater(t, second.Timestamp, first.Timestamp)
}
