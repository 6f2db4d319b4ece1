package service

import (
	"blog-platform/internal/errors"
	"blog-platform/internal/model"
	"blog-platform/internal/repository/interfaces"
)

// GroupService 处理社区相关的业务逻辑
type GroupService struct {
	groupRepo interfaces.GroupRepository
}

func NewGroupService(groupRepo interfaces.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

// GetBySlug 通过 slug 获取社区
func (s *GroupService) GetBySlug(slug string) (*model.Group, error) {
	group, err := s.groupRepo.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, errors.New(errors.ErrGroupNotFound, "社区不存在")
	}
	return group, nil
}

// List 返回全部社区，供发帖表单的下拉列表使用
func (s *GroupService) List() ([]*model.Group, error) {
	return s.groupRepo.FindAll()
}

// Create 创建社区，仅供后台和数据初始化使用
func (s *GroupService) Create(group *model.Group) error {
	existing, err := s.groupRepo.FindBySlug(group.Slug)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.New(errors.ErrResourceExists, "slug 已被使用")
	}
	return s.groupRepo.Create(group)
}
