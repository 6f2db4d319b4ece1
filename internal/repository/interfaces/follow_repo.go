package interfaces

import "blog-platform/internal/model"

// FollowRepository 定义了关注关系的数据库操作接口。
// 数据模型不约束重复边，去重和自关注策略在服务层实现。
type FollowRepository interface {
	Create(follow *model.Follow) error
	Delete(userID, authorID int) error
	Exists(userID, authorID int) (bool, error)
	CountFollowers(authorID int) (int, error)
	CountFollowing(userID int) (int, error)
}
