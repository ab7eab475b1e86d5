package service

import (
	"context"
	"errors"

	"Iris_Blog/internal/model"
	"Iris_Blog/internal/pkg"
	"Iris_Blog/internal/repository/mysql"
)

var (
	ErrGroupNotFound  = errors.New("group not found")
	ErrMemberNotFound = errors.New("member not found")
)

const maxGroupName = 100

type GroupService struct {
	repo    *mysql.GroupRepository
	members *mysql.GroupMemberRepository
}

func NewGroupService() *GroupService {
	return &GroupService{
		repo:    &mysql.GroupRepository{DB: mysql.DB},
		members: &mysql.GroupMemberRepository{DB: mysql.DB},
	}
}

// CreateGroup 建群，创建者自动成为管理员
func (s *GroupService) CreateGroup(ctx context.Context, userID uint64, name string) (*model.Group, error) {
	if name == "" {
		return nil, errors.New("group name required")
	}
	if len([]rune(name)) > maxGroupName {
		return nil, errors.New("group name too long")
	}
	g := &model.Group{Name: name, CreatorID: userID}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GroupService) Get(ctx context.Context, id uint64) (*model.Group, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	return g, nil
}

func (s *GroupService) Rename(ctx context.Context, id uint64, name string) error {
	if name == "" {
		return errors.New("group name required")
	}
	if len([]rune(name)) > maxGroupName {
		return errors.New("group name too long")
	}
	ok, err := s.repo.Rename(ctx, id, name)
	if err != nil {
		return err
	}
	if !ok {
		return ErrGroupNotFound
	}
	return nil
}

// Delete 删群幂等，连带成员关系
func (s *GroupService) Delete(ctx context.Context, id uint64) error {
	return s.repo.Delete(ctx, id)
}

// List 群分页列表
func (s *GroupService) List(ctx context.Context, page, perPage int) (pkg.Page[model.Group], error) {
	page, perPage = pkg.NormalizePage(page, perPage, pkg.DefaultPerPage)
	list, total, err := s.repo.List(ctx, pkg.Offset(page, perPage), perPage)
	if err != nil {
		return pkg.Page[model.Group]{}, err
	}
	return pkg.NewPage(list, total, page, perPage), nil
}

// Join 入群，重复加入无害
func (s *GroupService) Join(ctx context.Context, userID, groupID uint64) error {
	g, err := s.repo.FindByID(ctx, groupID)
	if err != nil {
		return err
	}
	if g == nil {
		return ErrGroupNotFound
	}
	return s.members.Join(ctx, &model.GroupMember{
		GroupID: groupID,
		UserID:  userID,
		Role:    model.GroupRoleMember,
	})
}

// Leave 退群，不在群里也视为成功
func (s *GroupService) Leave(ctx context.Context, userID, groupID uint64) error {
	return s.members.Leave(ctx, groupID, userID)
}

// SetRole 调整成员角色
func (s *GroupService) SetRole(ctx context.Context, groupID, userID uint64, role int) error {
	if role < model.GroupRoleMember || role > model.GroupRoleAdmin {
		return errors.New("invalid role")
	}
	ok, err := s.members.UpdateRole(ctx, groupID, userID, role)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMemberNotFound
	}
	return nil
}

// RemoveMember 管理员移除成员
func (s *GroupService) RemoveMember(ctx context.Context, groupID, userID uint64) error {
	ok, err := s.members.IsMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMemberNotFound
	}
	return s.members.Leave(ctx, groupID, userID)
}

// Members 成员分页列表 + 管理角色统计
func (s *GroupService) Members(ctx context.Context, groupID uint64, page, perPage int) (pkg.Page[mysql.MemberView], []mysql.RoleCount, error) {
	g, err := s.repo.FindByID(ctx, groupID)
	if err != nil {
		return pkg.Page[mysql.MemberView]{}, nil, err
	}
	if g == nil {
		return pkg.Page[mysql.MemberView]{}, nil, ErrGroupNotFound
	}
	page, perPage = pkg.NormalizePage(page, perPage, pkg.DefaultPerPage)
	rows, total, err := s.members.ListMembers(ctx, groupID, pkg.Offset(page, perPage), perPage)
	if err != nil {
		return pkg.Page[mysql.MemberView]{}, nil, err
	}
	counts, err := s.members.RoleCounts(ctx, groupID)
	if err != nil {
		return pkg.Page[mysql.MemberView]{}, nil, err
	}
	return pkg.NewPage(rows, total, page, perPage), counts, nil
}
