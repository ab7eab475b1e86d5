package mysql

import (
	"fmt"
	"testing"

	"Iris_Blog/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试用独立的内存库，表结构和生产一致
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Follow{},
		&model.Post{},
		&model.Message{},
		&model.Notification{},
		&model.Task{},
		&model.SearchOutbox{},
		&model.Group{},
		&model.GroupMember{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{
		Username: username,
		Password: "x",
		Email:    username + "@example.com",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}
