package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Iris_Blog/internal/model"
	"Iris_Blog/internal/pkg"
	"Iris_Blog/internal/repository/mysql"
	"Iris_Blog/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// tokenStore 会话 token 存取，生产实现是 redis
type tokenStore interface {
	AddUserToken(usrID uint64, token string) error
	DeleteUserToken(usrID uint64) error
}

// Profile 用户主页视图，计数每次实时查询
type Profile struct {
	ID             uint64 `json:"id"`
	Username       string `json:"username"`
	AboutMe        string `json:"about_me"`
	LastSeen       string `json:"last_seen"`
	PostCount      int64  `json:"post_count"`
	FollowerCount  int64  `json:"follower_count"`
	FollowingCount int64  `json:"following_count"`
}

type UserService struct {
	repo    *mysql.UserRepository
	follows *mysql.FollowRepository
	posts   *mysql.PostRepository
	rUser   tokenStore
	smtp    pkg.SMTPConfig
	baseURL string
}

func NewUserService(smtp pkg.SMTPConfig, baseURL string) *UserService {
	return &UserService{
		repo:    &mysql.UserRepository{DB: mysql.DB},
		follows: &mysql.FollowRepository{DB: mysql.DB},
		posts:   &mysql.PostRepository{DB: mysql.DB},
		rUser:   &redis.UserRepository{},
		smtp:    smtp,
		baseURL: baseURL,
	}
}

func (s *UserService) Register(username, password, email string) error {
	if username == "" || password == "" || email == "" {
		return errors.New("username, password and email required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{
		Username: username,
		Password: string(hash),
		Email:    email,
	}
	return s.repo.Create(user)
}

func (s *UserService) Login(username, password string) (*pkg.Pair, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, errors.New("user not found")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errors.New("invalid password")
	}
	// token 写入 redis，校验时比对
	token, err := pkg.GeneratePair(user.ID)
	if err != nil {
		return nil, err
	}
	if err = s.rUser.AddUserToken(user.ID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *UserService) Logout(usrID uint64) error {
	return s.rUser.DeleteUserToken(usrID)
}

// Refresh 换发 token 对；新 access 要写回会话存储，否则中间件比对会拒掉它
func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	pair, err := pkg.Refresh(refreshToken)
	if err != nil {
		return nil, err
	}
	claims, err := pkg.ParseAccess(pair.AccessToken)
	if err != nil {
		return nil, err
	}
	if err = s.rUser.AddUserToken(claims.UserID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}

// ChangePassword 登录态修改密码
func (s *UserService) ChangePassword(usrID uint64, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(usrID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return errors.New("old password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err = s.repo.UpdatePassword(user, string(hash)); err != nil {
		return err
	}
	return s.Logout(usrID)
}

// RequestPasswordReset 邮寄签名重置链接，服务端不存任何状态
// 邮箱不存在时同样返回成功，避免探测注册邮箱
func (s *UserService) RequestPasswordReset(email string) error {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	token, err := pkg.GenerateResetToken(user.ID)
	if err != nil {
		return err
	}
	link := fmt.Sprintf("%s/reset?token=%s", s.baseURL, token)
	html := pkg.ResetPasswordHTML(user.Username, link, pkg.ResetTTL)
	return pkg.SendEmail(s.smtp, user.Email, "密码重置", html)
}

// ResetPassword 用邮件里的令牌重设密码
func (s *UserService) ResetPassword(token, newPassword string) error {
	if newPassword == "" {
		return errors.New("password required")
	}
	userID, err := pkg.ParseResetToken(token)
	if err != nil {
		return err
	}
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(user, string(hash))
}

// UpdateAboutMe 资料编辑
func (s *UserService) UpdateAboutMe(usrID uint64, aboutMe string) error {
	if len([]rune(aboutMe)) > maxPostBody {
		return errors.New("about_me too long")
	}
	return s.repo.UpdateAboutMe(usrID, aboutMe)
}

// ListUsers 用户分页列表
func (s *UserService) ListUsers(ctx context.Context, page, perPage int) (pkg.Page[model.User], error) {
	page, perPage = pkg.NormalizePage(page, perPage, pkg.DefaultPerPage)
	list, total, err := s.repo.List(ctx, pkg.Offset(page, perPage), perPage)
	if err != nil {
		return pkg.Page[model.User]{}, err
	}
	return pkg.NewPage(list, total, page, perPage), nil
}

// GetProfile 用户主页：资料 + 实时计数
func (s *UserService) GetProfile(ctx context.Context, usrID uint64) (*Profile, error) {
	user, err := s.repo.FindByID(usrID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	postCount, err := s.posts.CountByAuthor(ctx, usrID)
	if err != nil {
		return nil, err
	}
	followerCount, err := s.follows.FollowerCount(ctx, usrID)
	if err != nil {
		return nil, err
	}
	followingCount, err := s.follows.FollowingCount(ctx, usrID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		ID:             user.ID,
		Username:       user.Username,
		AboutMe:        user.AboutMe,
		LastSeen:       user.LastSeen.UTC().Format(time.RFC3339),
		PostCount:      postCount,
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
	}, nil
}
