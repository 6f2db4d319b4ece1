package mysql

import (
	"database/sql"

	"blog-platform/internal/model"
	"blog-platform/internal/util"

	"go.uber.org/zap"
)

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *commentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	query := `INSERT INTO comments (post_id, author_id, text, created) VALUES (?, ?, ?, ?)`
	result, err := r.db.Exec(query, comment.PostID, comment.AuthorID, comment.Text, comment.Created)
	if err != nil {
		util.Logger.Error("创建评论失败", zap.Error(err), zap.Int("post_id", comment.PostID))
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		util.Logger.Error("获取新评论ID失败", zap.Error(err))
		return err
	}
	comment.ID = int(id)
	util.Logger.Info("评论创建成功", zap.Int("comment_id", comment.ID))
	return nil
}

// ListByPost 返回帖子的全部评论，按创建时间正序
func (r *commentRepository) ListByPost(postID int) ([]*model.Comment, error) {
	query := `
        SELECT c.id, c.post_id, c.author_id, c.text, c.created, u.username
        FROM comments c
        JOIN users u ON c.author_id = u.id
        WHERE c.post_id = ?
        ORDER BY c.created ASC, c.id ASC`

	rows, err := r.db.Query(query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		var comment model.Comment
		var author model.User
		err := rows.Scan(
			&comment.ID, &comment.PostID, &comment.AuthorID,
			&comment.Text, &comment.Created, &author.Username,
		)
		if err != nil {
			return nil, err
		}
		author.ID = comment.AuthorID
		comment.Author = &author
		comments = append(comments, &comment)
	}
	return comments, rows.Err()
}

func (r *commentRepository) CountByPost(postID int) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM comments WHERE post_id = ?`, postID).Scan(&count)
	return count, err
}
