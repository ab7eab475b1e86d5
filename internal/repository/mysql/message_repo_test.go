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

func unreadPayload(t *testing.T, db *gorm.DB, userID uint64) int64 {
	t.Helper()
	repo := &NotificationRepository{DB: db}
	n, err := repo.Get(context.Background(), userID, model.NotificationUnreadMessageCount)
	require.NoError(t, err)
	require.NotNil(t, n)
	var count int64
	require.NoError(t, json.Unmarshal([]byte(n.Payload), &count))
	return count
}

func TestSendNotifiesUnreadCount(t *testing.T) {
	db := newTestDB(t)
	repo := &MessageRepository{DB: db}
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	require.NoError(t, repo.Send(ctx, &model.Message{SenderID: alice.ID, RecipientID: bob.ID, Body: "hi"}))
	require.NoError(t, repo.Send(ctx, &model.Message{SenderID: alice.ID, RecipientID: bob.ID, Body: "again"}))

	// 未读数通知是单槽的，第二次发送覆盖为 2
	assert.Equal(t, int64(2), unreadPayload(t, db, bob.ID))

	count, err := repo.CountUnread(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestMarkReadResetsUnread(t *testing.T) {
	db := newTestDB(t)
	repo := &MessageRepository{DB: db}
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	require.NoError(t, repo.Send(ctx, &model.Message{SenderID: alice.ID, RecipientID: bob.ID, Body: "hi"}))
	require.NoError(t, repo.MarkRead(ctx, bob.ID))

	assert.Equal(t, int64(0), unreadPayload(t, db, bob.ID))

	count, err := repo.CountUnread(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestInboxListing(t *testing.T) {
	db := newTestDB(t)
	repo := &MessageRepository{DB: db}
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	for _, body := range []string{"m1", "m2", "m3"} {
		require.NoError(t, repo.Send(ctx, &model.Message{SenderID: alice.ID, RecipientID: bob.ID, Body: body}))
	}

	list, total, err := repo.ListByRecipient(ctx, bob.ID, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 2)

	// 发件人自己的收件箱为空
	list, total, err = repo.ListByRecipient(ctx, alice.ID, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, list)
}
