package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserList(t *testing.T) {
	db := newTestDB(t)
	repo := &UserRepository{DB: db}
	ctx := context.Background()

	for _, name := range []string{"u1", "u2", "u3"} {
		seedUser(t, db, name)
	}

	list, total, err := repo.List(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, list, 2)
	// 按 id 升序
	assert.Equal(t, "u1", list[0].Username)
	assert.Equal(t, "u2", list[1].Username)

	list, total, err = repo.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, list, 1)
	assert.Equal(t, "u3", list[0].Username)
}
