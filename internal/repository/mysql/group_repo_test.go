package mysql

import (
	"context"
	"testing"

	"Iris_Blog/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedGroup(t *testing.T, db *gorm.DB, creatorID uint64, name string) *model.Group {
	t.Helper()
	repo := &GroupRepository{DB: db}
	g := &model.Group{Name: name, CreatorID: creatorID}
	require.NoError(t, repo.Create(context.Background(), g))
	return g
}

func TestGroupCreateAddsCreatorAsAdmin(t *testing.T) {
	db := newTestDB(t)
	members := &GroupMemberRepository{DB: db}
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	g := seedGroup(t, db, alice.ID, "readers")

	ok, err := members.IsMember(ctx, g.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	var m model.GroupMember
	require.NoError(t, db.Where("group_id = ? AND user_id = ?", g.ID, alice.ID).First(&m).Error)
	assert.Equal(t, model.GroupRoleAdmin, m.Role)
}

func TestGroupJoinLeaveIdempotent(t *testing.T) {
	db := newTestDB(t)
	members := &GroupMemberRepository{DB: db}
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	g := seedGroup(t, db, alice.ID, "readers")

	// 重复入群只留一条记录
	require.NoError(t, members.Join(ctx, &model.GroupMember{GroupID: g.ID, UserID: bob.ID}))
	require.NoError(t, members.Join(ctx, &model.GroupMember{GroupID: g.ID, UserID: bob.ID}))

	var n int64
	require.NoError(t, db.Model(&model.GroupMember{}).
		Where("group_id = ? AND user_id = ?", g.ID, bob.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	// 退群两次不报错
	require.NoError(t, members.Leave(ctx, g.ID, bob.ID))
	require.NoError(t, members.Leave(ctx, g.ID, bob.ID))

	ok, err := members.IsMember(ctx, g.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGroupRename(t *testing.T) {
	db := newTestDB(t)
	repo := &GroupRepository{DB: db}
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	g := seedGroup(t, db, alice.ID, "readers")

	ok, err := repo.Rename(ctx, g.ID, "writers")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.FindByID(ctx, g.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "writers", got.Name)

	// 不存在的群改名不命中
	ok, err = repo.Rename(ctx, g.ID+100, "x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGroupDeleteCascadesMembers(t *testing.T) {
	db := newTestDB(t)
	repo := &GroupRepository{DB: db}
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	g := seedGroup(t, db, alice.ID, "readers")

	require.NoError(t, repo.Delete(ctx, g.ID))

	got, err := repo.FindByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	var n int64
	require.NoError(t, db.Model(&model.GroupMember{}).Where("group_id = ?", g.ID).Count(&n).Error)
	assert.Equal(t, int64(0), n)

	// 重复删除视为成功
	require.NoError(t, repo.Delete(ctx, g.ID))
}

func TestGroupList(t *testing.T) {
	db := newTestDB(t)
	repo := &GroupRepository{DB: db}
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	for _, name := range []string{"g1", "g2", "g3"} {
		seedGroup(t, db, alice.ID, name)
	}

	list, total, err := repo.List(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, list, 2)
	// 新群在前
	assert.Equal(t, "g3", list[0].Name)
}

func TestGroupMembersAndRoles(t *testing.T) {
	db := newTestDB(t)
	members := &GroupMemberRepository{DB: db}
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")
	g := seedGroup(t, db, alice.ID, "readers")

	require.NoError(t, members.Join(ctx, &model.GroupMember{GroupID: g.ID, UserID: bob.ID}))
	require.NoError(t, members.Join(ctx, &model.GroupMember{GroupID: g.ID, UserID: carol.ID}))

	ok, err := members.UpdateRole(ctx, g.ID, bob.ID, model.GroupRoleModerator)
	require.NoError(t, err)
	assert.True(t, ok)

	// 不在群里的用户改角色不命中
	ok, err = members.UpdateRole(ctx, g.ID, bob.ID+100, model.GroupRoleAdmin)
	require.NoError(t, err)
	assert.False(t, ok)

	rows, total, err := members.ListMembers(ctx, g.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rows, 3)
	byName := map[string]int{}
	for _, m := range rows {
		byName[m.Username] = m.Role
	}
	assert.Equal(t, model.GroupRoleAdmin, byName["alice"])
	assert.Equal(t, model.GroupRoleModerator, byName["bob"])
	assert.Equal(t, model.GroupRoleMember, byName["carol"])

	// 统计只含管理角色
	counts, err := members.RoleCounts(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, model.GroupRoleAdmin, counts[0].Role)
	assert.Equal(t, int64(1), counts[0].Count)
	assert.Equal(t, model.GroupRoleModerator, counts[1].Role)
	assert.Equal(t, int64(1), counts[1].Count)
}
