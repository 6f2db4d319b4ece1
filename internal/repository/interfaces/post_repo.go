package interfaces

import "blog-platform/internal/model"

// PostRepository 定义了帖子相关的数据库操作接口。
// 所有列表均按发布时间倒序返回，limit/offset 由分页层计算。
type PostRepository interface {
	Create(post *model.Post) error
	FindByID(id int) (*model.Post, error)
	// Update 只允许修改 text、group_id 和 image，author 和 pub_date 不可变
	Update(post *model.Post) error
	Delete(id int) error

	Count() (int, error)
	CountByGroup(groupID int) (int, error)
	CountByAuthor(authorID int) (int, error)
	// CountFeed 统计 userID 所关注作者的帖子总数
	CountFeed(userID int) (int, error)

	List(limit, offset int) ([]*model.Post, error)
	ListByGroup(groupID, limit, offset int) ([]*model.Post, error)
	ListByAuthor(authorID, limit, offset int) ([]*model.Post, error)
	// ListFeed 返回 userID 所关注作者的帖子
	ListFeed(userID, limit, offset int) ([]*model.Post, error)
}
