package mysql

import (
	"database/sql"

	"blog-platform/internal/model"
	"blog-platform/internal/util"

	"go.uber.org/zap"
)

// userRepository 实现了 UserRepository 接口
type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db}
}

// Create 创建一个新用户
func (r *userRepository) Create(user *model.User) error {
	query := `INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`
	result, err := r.db.Exec(query, user.Username, user.Email, user.PasswordHash)
	if err != nil {
		util.Logger.Error("创建用户失败", zap.Error(err))
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		util.Logger.Error("获取新用户ID失败", zap.Error(err))
		return err
	}
	user.ID = int(id)
	util.Logger.Info("用户创建成功", zap.Int("user_id", user.ID))
	return nil
}

// FindByID 通过ID查找用户，不存在时返回 nil
func (r *userRepository) FindByID(id int) (*model.User, error) {
	return r.findOne(`SELECT id, username, email, password_hash, created_at
              FROM users WHERE id = ?`, id)
}

// FindByUsername 通过用户名查找用户，不存在时返回 nil
func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	return r.findOne(`SELECT id, username, email, password_hash, created_at
              FROM users WHERE username = ?`, username)
}

// FindByEmail 通过邮箱查找用户，不存在时返回 nil
func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	return r.findOne(`SELECT id, username, email, password_hash, created_at
              FROM users WHERE email = ?`, email)
}

// Delete 删除用户，其帖子、评论和关注关系由外键级联删除
func (r *userRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		util.Logger.Error("删除用户失败", zap.Error(err), zap.Int("user_id", id))
	}
	return err
}

func (r *userRepository) findOne(query string, arg interface{}) (*model.User, error) {
	var user model.User
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
