package service

import (
	"time"

	"blog-platform/internal/errors"
	"blog-platform/internal/model"
	"blog-platform/internal/pagination"
	"blog-platform/internal/repository/interfaces"
	"blog-platform/internal/util"

	"go.uber.org/zap"
)

// PostService 处理帖子和评论的业务逻辑
type PostService struct {
	postRepo    interfaces.PostRepository
	commentRepo interfaces.CommentRepository
	userRepo    interfaces.UserRepository
}

func NewPostService(postRepo interfaces.PostRepository, commentRepo interfaces.CommentRepository, userRepo interfaces.UserRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
	}
}

// Index 返回首页的一页帖子
func (s *PostService) Index(page int) ([]*model.Post, pagination.Page, error) {
	total, err := s.postRepo.Count()
	if err != nil {
		return nil, pagination.Page{}, err
	}
	pg := pagination.Paginate(total, page)
	posts, err := s.postRepo.List(pg.Limit(), pg.Offset())
	if err != nil {
		return nil, pg, err
	}
	return posts, pg, attachCommentCounts(s.commentRepo, posts)
}

// GroupPosts 返回某社区的一页帖子
func (s *PostService) GroupPosts(group *model.Group, page int) ([]*model.Post, pagination.Page, error) {
	total, err := s.postRepo.CountByGroup(group.ID)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	pg := pagination.Paginate(total, page)
	posts, err := s.postRepo.ListByGroup(group.ID, pg.Limit(), pg.Offset())
	if err != nil {
		return nil, pg, err
	}
	return posts, pg, attachCommentCounts(s.commentRepo, posts)
}

// AuthorPosts 返回某作者的一页帖子
func (s *PostService) AuthorPosts(authorID, page int) ([]*model.Post, pagination.Page, error) {
	total, err := s.postRepo.CountByAuthor(authorID)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	pg := pagination.Paginate(total, page)
	posts, err := s.postRepo.ListByAuthor(authorID, pg.Limit(), pg.Offset())
	if err != nil {
		return nil, pg, err
	}
	return posts, pg, attachCommentCounts(s.commentRepo, posts)
}

// attachCommentCounts 为列表中的每篇帖子补全评论数
func attachCommentCounts(commentRepo interfaces.CommentRepository, posts []*model.Post) error {
	for _, post := range posts {
		count, err := commentRepo.CountByPost(post.ID)
		if err != nil {
			return err
		}
		post.CommentCount = count
	}
	return nil
}

// GetPost 获取单个帖子
func (s *PostService) GetPost(id int) (*model.Post, error) {
	post, err := s.postRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "帖子不存在")
	}
	return post, nil
}

// PostDetail 获取帖子及其全部评论
func (s *PostService) PostDetail(id int) (*model.Post, []*model.Comment, error) {
	post, err := s.GetPost(id)
	if err != nil {
		return nil, nil, err
	}
	comments, err := s.commentRepo.ListByPost(id)
	if err != nil {
		return nil, nil, err
	}
	post.CommentCount = len(comments)
	return post, comments, nil
}

// CreatePost 创建帖子。pub_date 在写入时由服务端赋值，之后不可变。
func (s *PostService) CreatePost(authorID int, text string, group *model.Group, image string) (*model.Post, error) {
	post := &model.Post{
		AuthorID: authorID,
		Text:     text,
		Image:    image,
		PubDate:  time.Now(),
	}
	if group != nil {
		post.GroupID = &group.ID
		post.Group = group
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// EditPost 原地修改帖子的 text、group 和 image。
// 只有帖子作者可以修改；image 为空字符串时保留原图。
func (s *PostService) EditPost(postID, editorID int, text string, group *model.Group, image string) error {
	post, err := s.GetPost(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != editorID {
		util.Logger.Warn("非作者尝试编辑帖子",
			zap.Int("post_id", postID), zap.Int("user_id", editorID))
		return errors.New(errors.ErrNotAuthor, "只有作者可以编辑帖子")
	}

	post.Text = text
	if group != nil {
		post.GroupID = &group.ID
	} else {
		post.GroupID = nil
	}
	if image != "" {
		post.Image = image
	}

	return s.postRepo.Update(post)
}

// AddComment 给帖子添加评论，created 由服务端赋值
func (s *PostService) AddComment(postID, authorID int, text string) (*model.Comment, error) {
	if _, err := s.GetPost(postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
		Created:  time.Now(),
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}
