package interfaces

import "blog-platform/internal/model"

// GroupRepository 定义了社区相关的数据库操作接口。
// 社区通过后台或数据初始化创建，没有面向用户的写入口。
type GroupRepository interface {
	Create(group *model.Group) error
	FindBySlug(slug string) (*model.Group, error)
	FindAll() ([]*model.Group, error)
}
