package service

import (
	"context"
	"errors"

	"Iris_Blog/internal/model"
	"Iris_Blog/internal/pkg"
	"Iris_Blog/internal/repository/mysql"
)

const maxPostBody = 140

type PostService struct {
	repo *mysql.PostRepository
}

func NewPostService() *PostService {
	return &PostService{
		repo: &mysql.PostRepository{DB: mysql.DB},
	}
}

// CreatePost 发帖；language 由上游检测服务给出，可为空
func (s *PostService) CreatePost(ctx context.Context, userID uint64, body, language string) (*model.Post, error) {
	if body == "" {
		return nil, errors.New("body required")
	}
	if len([]rune(body)) > maxPostBody {
		return nil, errors.New("body too long")
	}

	post := &model.Post{
		AuthorID: userID,
		Body:     body,
		Language: language,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Feed 主页时间线，每次请求重新聚合
func (s *PostService) Feed(ctx context.Context, userID uint64, page, perPage int) (pkg.Page[model.Post], error) {
	page, perPage = pkg.NormalizePage(page, perPage, pkg.DefaultPerPage)
	total, err := s.repo.FeedCount(ctx, userID)
	if err != nil {
		return pkg.Page[model.Post]{}, err
	}
	list, err := s.repo.Feed(ctx, userID, pkg.Offset(page, perPage), perPage)
	if err != nil {
		return pkg.Page[model.Post]{}, err
	}
	return pkg.NewPage(list, total, page, perPage), nil
}

// Explore 广场页全量帖子
func (s *PostService) Explore(ctx context.Context, page, perPage int) (pkg.Page[model.Post], error) {
	page, perPage = pkg.NormalizePage(page, perPage, pkg.DefaultPerPage)
	list, total, err := s.repo.ListAll(ctx, pkg.Offset(page, perPage), perPage)
	if err != nil {
		return pkg.Page[model.Post]{}, err
	}
	return pkg.NewPage(list, total, page, perPage), nil
}
