package mysql

import (
	"context"
	"time"

	"Iris_Blog/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ? OR email = ?", username, username).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByID(id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var usr model.User
	err := r.DB.Where("email = ?", email).First(&usr).Error
	return &usr, err
}

func (r *UserRepository) UpdatePassword(user *model.User, newPassword string) error {
	return r.DB.Model(user).Update("password", newPassword).Error
}

// UpdateAboutMe 资料编辑
func (r *UserRepository) UpdateAboutMe(id uint64, aboutMe string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).
		Update("about_me", aboutMe).Error
}

// List 用户分页列表，附带总数
func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]model.User, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.User
	err := r.DB.WithContext(ctx).
		Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, total, err
}

// TouchLastSeen 活跃时间戳，鉴权中间件每次请求刷新
func (r *UserRepository) TouchLastSeen(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("last_seen", time.Now()).Error
}
