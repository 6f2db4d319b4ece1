package service

import (
	"blog-platform/internal/errors"
	"blog-platform/internal/model"
	"blog-platform/internal/pagination"
	"blog-platform/internal/repository/interfaces"
	"blog-platform/internal/util"

	"go.uber.org/zap"
)

// FollowService 处理关注关系和关注流的业务逻辑。
// 数据模型不约束重复边，这里统一实现幂等：重复关注是空操作，
// 自关注被拒绝，取消不存在的关注也是空操作。
type FollowService struct {
	followRepo  interfaces.FollowRepository
	postRepo    interfaces.PostRepository
	commentRepo interfaces.CommentRepository
}

func NewFollowService(followRepo interfaces.FollowRepository, postRepo interfaces.PostRepository, commentRepo interfaces.CommentRepository) *FollowService {
	return &FollowService{
		followRepo:  followRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// Follow 建立 user → author 的关注边
func (s *FollowService) Follow(userID, authorID int) error {
	if userID == authorID {
		return errors.New(errors.ErrSelfFollow, "不能关注自己")
	}

	exists, err := s.followRepo.Exists(userID, authorID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	follow := &model.Follow{UserID: userID, AuthorID: authorID}
	if err := s.followRepo.Create(follow); err != nil {
		return err
	}
	util.Logger.Info("建立关注", zap.Int("user_id", userID), zap.Int("author_id", authorID))
	return nil
}

// Unfollow 删除 user → author 的关注边
func (s *FollowService) Unfollow(userID, authorID int) error {
	return s.followRepo.Delete(userID, authorID)
}

// Followers 返回 author 的粉丝数
func (s *FollowService) Followers(authorID int) (int, error) {
	return s.followRepo.CountFollowers(authorID)
}

// Following 返回 user 关注的作者数
func (s *FollowService) Following(userID int) (int, error) {
	return s.followRepo.CountFollowing(userID)
}

// IsFollowing 判断 user 是否关注了 author
func (s *FollowService) IsFollowing(userID, authorID int) (bool, error) {
	return s.followRepo.Exists(userID, authorID)
}

// Feed 返回用户所关注作者的一页帖子
func (s *FollowService) Feed(userID, page int) ([]*model.Post, pagination.Page, error) {
	total, err := s.postRepo.CountFeed(userID)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	pg := pagination.Paginate(total, page)
	posts, err := s.postRepo.ListFeed(userID, pg.Limit(), pg.Offset())
	if err != nil {
		return nil, pg, err
	}
	return posts, pg, attachCommentCounts(s.commentRepo, posts)
}
