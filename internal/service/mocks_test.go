package service

import (
	"blog-platform/internal/model"
	"blog-platform/internal/repository/interfaces"

	"github.com/stretchr/testify/mock"
)

// 确保各 Mock 实现对应的接口
var (
	_ interfaces.UserRepository    = (*MockUserRepository)(nil)
	_ interfaces.GroupRepository   = (*MockGroupRepository)(nil)
	_ interfaces.PostRepository    = (*MockPostRepository)(nil)
	_ interfaces.CommentRepository = (*MockCommentRepository)(nil)
	_ interfaces.FollowRepository  = (*MockFollowRepository)(nil)
)

// MockUserRepository 是 UserRepository 接口的模拟实现
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id int) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockGroupRepository 是 GroupRepository 接口的模拟实现
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) Create(group *model.Group) error {
	args := m.Called(group)
	return args.Error(0)
}

func (m *MockGroupRepository) FindBySlug(slug string) (*model.Group, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Group), args.Error(1)
}

func (m *MockGroupRepository) FindAll() ([]*model.Group, error) {
	args := m.Called()
	return args.Get(0).([]*model.Group), args.Error(1)
}

// MockPostRepository 是 PostRepository 接口的模拟实现
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(id int) (*model.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) Update(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPostRepository) Count() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func (m *MockPostRepository) CountByGroup(groupID int) (int, error) {
	args := m.Called(groupID)
	return args.Int(0), args.Error(1)
}

func (m *MockPostRepository) CountByAuthor(authorID int) (int, error) {
	args := m.Called(authorID)
	return args.Int(0), args.Error(1)
}

func (m *MockPostRepository) CountFeed(userID int) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

func (m *MockPostRepository) List(limit, offset int) ([]*model.Post, error) {
	args := m.Called(limit, offset)
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockPostRepository) ListByGroup(groupID, limit, offset int) ([]*model.Post, error) {
	args := m.Called(groupID, limit, offset)
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockPostRepository) ListByAuthor(authorID, limit, offset int) ([]*model.Post, error) {
	args := m.Called(authorID, limit, offset)
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockPostRepository) ListFeed(userID, limit, offset int) ([]*model.Post, error) {
	args := m.Called(userID, limit, offset)
	return args.Get(0).([]*model.Post), args.Error(1)
}

// MockCommentRepository 是 CommentRepository 接口的模拟实现
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListByPost(postID int) ([]*model.Comment, error) {
	args := m.Called(postID)
	return args.Get(0).([]*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) CountByPost(postID int) (int, error) {
	args := m.Called(postID)
	return args.Int(0), args.Error(1)
}

// MockFollowRepository 是 FollowRepository 接口的模拟实现
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(follow *model.Follow) error {
	args := m.Called(follow)
	return args.Error(0)
}

func (m *MockFollowRepository) Delete(userID, authorID int) error {
	args := m.Called(userID, authorID)
	return args.Error(0)
}

func (m *MockFollowRepository) Exists(userID, authorID int) (bool, error) {
	args := m.Called(userID, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) CountFollowers(authorID int) (int, error) {
	args := m.Called(authorID)
	return args.Int(0), args.Error(1)
}

func (m *MockFollowRepository) CountFollowing(userID int) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}
