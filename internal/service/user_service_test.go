package service

import (
	"fmt"
	"testing"

	"Iris_Blog/internal/model"
	"Iris_Blog/internal/pkg"
	"Iris_Blog/internal/repository/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeTokenStore 内存会话存储，替代 redis
type fakeTokenStore struct {
	tokens map[uint64]string
}

func (f *fakeTokenStore) AddUserToken(usrID uint64, token string) error {
	f.tokens[usrID] = token
	return nil
}

func (f *fakeTokenStore) DeleteUserToken(usrID uint64) error {
	delete(f.tokens, usrID)
	return nil
}

func newUserService(t *testing.T) (*UserService, *fakeTokenStore) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Follow{}, &model.Post{}))

	store := &fakeTokenStore{tokens: map[uint64]string{}}
	svc := &UserService{
		repo:    &mysql.UserRepository{DB: db},
		follows: &mysql.FollowRepository{DB: db},
		posts:   &mysql.PostRepository{DB: db},
		rUser:   store,
	}
	return svc, store
}

func TestLoginStoresSessionToken(t *testing.T) {
	svc, store := newUserService(t)

	require.NoError(t, svc.Register("alice", "secret", "alice@example.com"))

	pair, err := svc.Login("alice", "secret")
	require.NoError(t, err)

	claims, err := pkg.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, pair.AccessToken, store.tokens[claims.UserID])

	_, err = svc.Login("alice", "wrong")
	assert.Error(t, err)
}

func TestRefreshStoresNewAccessToken(t *testing.T) {
	svc, store := newUserService(t)

	require.NoError(t, svc.Register("alice", "secret", "alice@example.com"))
	pair, err := svc.Login("alice", "secret")
	require.NoError(t, err)

	claims, err := pkg.ParseAccess(pair.AccessToken)
	require.NoError(t, err)

	// 换发后会话存储必须持有新 access，否则中间件比对会拒掉它
	next, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, next.AccessToken, store.tokens[claims.UserID])

	nextClaims, err := pkg.ParseAccess(next.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, nextClaims.UserID)

	_, err = svc.Refresh("not-a-token")
	assert.Error(t, err)
}
