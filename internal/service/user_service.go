package service

import (
	"blog-platform/internal/errors"
	"blog-platform/internal/model"
	"blog-platform/internal/repository/interfaces"

	"golang.org/x/crypto/bcrypt"
)

// UserService 处理与用户相关的业务逻辑
type UserService struct {
	userRepo interfaces.UserRepository
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(userRepo interfaces.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register 注册新用户。user.PasswordHash 传入时是明文密码，注册后替换为哈希。
func (s *UserService) Register(user *model.User) error {
	existing, err := s.userRepo.FindByUsername(user.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.New(errors.ErrUserExists, "用户名已被使用")
	}

	existing, err = s.userRepo.FindByEmail(user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.New(errors.ErrUserExists, "邮箱已被使用")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashedPassword)

	return s.userRepo.Create(user)
}

// Login 校验用户名和密码
func (s *UserService) Login(username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New(errors.ErrInvalidCredentials, "用户名或密码不正确")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidCredentials, "用户名或密码不正确", err)
	}
	return user, nil
}

// GetUserByID 通过ID获取用户信息
func (s *UserService) GetUserByID(id int) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "用户不存在")
	}
	return user, nil
}

// GetUserByUsername 通过用户名获取用户信息
func (s *UserService) GetUserByUsername(username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "用户不存在")
	}
	return user, nil
}

// DeleteAccount 删除用户，帖子、评论和关注关系随外键级联删除
func (s *UserService) DeleteAccount(id int) error {
	return s.userRepo.Delete(id)
}
