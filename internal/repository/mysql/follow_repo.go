package mysql

import (
	"database/sql"

	"blog-platform/internal/model"
	"blog-platform/internal/util"

	"go.uber.org/zap"
)

type followRepository struct {
	db *sql.DB
}

func NewFollowRepository(db *sql.DB) *followRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(follow *model.Follow) error {
	query := `INSERT INTO follows (user_id, author_id, created_at) VALUES (?, ?, NOW())`
	result, err := r.db.Exec(query, follow.UserID, follow.AuthorID)
	if err != nil {
		util.Logger.Error("创建关注失败", zap.Error(err),
			zap.Int("user_id", follow.UserID), zap.Int("author_id", follow.AuthorID))
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	follow.ID = int(id)
	util.Logger.Info("关注创建成功", zap.Int("follow_id", follow.ID))
	return nil
}

// Delete 删除关注边，边不存在时也不报错
func (r *followRepository) Delete(userID, authorID int) error {
	query := `DELETE FROM follows WHERE user_id = ? AND author_id = ?`
	_, err := r.db.Exec(query, userID, authorID)
	if err != nil {
		util.Logger.Error("删除关注失败", zap.Error(err),
			zap.Int("user_id", userID), zap.Int("author_id", authorID))
	}
	return err
}

func (r *followRepository) Exists(userID, authorID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`
        SELECT EXISTS(
            SELECT 1 FROM follows
            WHERE user_id = ? AND author_id = ?
        )`, userID, authorID).Scan(&exists)
	return exists, err
}

func (r *followRepository) CountFollowers(authorID int) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM follows WHERE author_id = ?`, authorID).Scan(&count)
	return count, err
}

func (r *followRepository) CountFollowing(userID int) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM follows WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}
