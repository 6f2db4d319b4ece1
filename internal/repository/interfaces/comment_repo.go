package interfaces

import "blog-platform/internal/model"

// CommentRepository 定义了评论相关的数据库操作接口
type CommentRepository interface {
	Create(comment *model.Comment) error
	ListByPost(postID int) ([]*model.Comment, error)
	CountByPost(postID int) (int, error)
}
