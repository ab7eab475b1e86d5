package service

import (
	"context"
	"errors"

	"Iris_Blog/internal/model"
	"Iris_Blog/internal/pkg"
	"Iris_Blog/internal/repository/mysql"
)

type FollowService struct {
	repo *mysql.FollowRepository
}

func NewFollowService() *FollowService {
	return &FollowService{
		repo: &mysql.FollowRepository{DB: mysql.DB},
	}
}

func (s *FollowService) Follow(ctx context.Context, followerID, followeeID uint64) error {
	if followerID == 0 || followeeID == 0 {
		return errors.New("invalid user id")
	}
	if followerID == followeeID {
		return errors.New("cannot follow self")
	}
	return s.repo.Follow(ctx, followerID, followeeID)
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID uint64) error {
	if followerID == 0 || followeeID == 0 {
		return errors.New("invalid user id")
	}
	if followerID == followeeID {
		return errors.New("cannot unfollow self")
	}
	return s.repo.Unfollow(ctx, followerID, followeeID)
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	if followerID == 0 || followeeID == 0 {
		return false, errors.New("invalid user id")
	}
	return s.repo.IsFollowing(ctx, followerID, followeeID)
}

// Followers 粉丝分页列表
func (s *FollowService) Followers(ctx context.Context, userID uint64, page, perPage int) (pkg.Page[model.User], error) {
	page, perPage = pkg.NormalizePage(page, perPage, pkg.DefaultPerPage)
	rows, total, err := s.repo.ListFollowers(ctx, userID, pkg.Offset(page, perPage), perPage)
	if err != nil {
		return pkg.Page[model.User]{}, err
	}
	return pkg.NewPage(rows, total, page, perPage), nil
}

// Following 关注分页列表
func (s *FollowService) Following(ctx context.Context, userID uint64, page, perPage int) (pkg.Page[model.User], error) {
	page, perPage = pkg.NormalizePage(page, perPage, pkg.DefaultPerPage)
	rows, total, err := s.repo.ListFollowing(ctx, userID, pkg.Offset(page, perPage), perPage)
	if err != nil {
		return pkg.Page[model.User]{}, err
	}
	return pkg.NewPage(rows, total, page, perPage), nil
}
