package posts

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"blog-platform/internal/errors"
	"blog-platform/internal/form"
	"blog-platform/internal/model"
	"blog-platform/internal/service"
	"blog-platform/internal/storage"
	"blog-platform/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PostHandler 实现帖子相关的页面：首页、社区页、个人主页、
// 帖子详情、发布、编辑和评论
type PostHandler struct {
	postService   *service.PostService
	groupService  *service.GroupService
	userService   *service.UserService
	followService *service.FollowService
	storage       storage.Storage
}

func NewPostHandler(
	postService *service.PostService,
	groupService *service.GroupService,
	userService *service.UserService,
	followService *service.FollowService,
	storage storage.Storage,
) *PostHandler {
	return &PostHandler{
		postService:   postService,
		groupService:  groupService,
		userService:   userService,
		followService: followService,
		storage:       storage,
	}
}

// Index 渲染首页的帖子列表
func (h *PostHandler) Index(c *gin.Context) {
	posts, page, err := h.postService.Index(pageNumber(c))
	if err != nil {
		util.Logger.Error("获取首页帖子失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrDatabase, "获取帖子列表失败", err))
		return
	}

	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"user":  c.Value("user"),
		"posts": posts,
		"page":  page,
	})
}

// GroupPosts 渲染某个社区的帖子列表，slug 未知时返回404页面
func (h *PostHandler) GroupPosts(c *gin.Context) {
	group, err := h.groupService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.IsNotFound(err) {
			errors.NotFoundPage(c)
			return
		}
		errors.HandleError(c, err)
		return
	}

	posts, page, err := h.postService.GroupPosts(group, pageNumber(c))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrDatabase, "获取帖子列表失败", err))
		return
	}

	c.HTML(http.StatusOK, "group_list.tmpl", gin.H{
		"user":  c.Value("user"),
		"group": group,
		"posts": posts,
		"page":  page,
	})
}

// Profile 渲染作者主页，用户名未知时返回404页面
func (h *PostHandler) Profile(c *gin.Context) {
	author, err := h.userService.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.IsNotFound(err) {
			errors.NotFoundPage(c)
			return
		}
		errors.HandleError(c, err)
		return
	}

	posts, page, err := h.postService.AuthorPosts(author.ID, pageNumber(c))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrDatabase, "获取帖子列表失败", err))
		return
	}

	followers, err := h.followService.Followers(author.ID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrDatabase, "获取关注数失败", err))
		return
	}
	followingCount, err := h.followService.Following(author.ID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrDatabase, "获取关注数失败", err))
		return
	}

	following := false
	if viewer := currentUser(c); viewer != nil && viewer.ID != author.ID {
		following, _ = h.followService.IsFollowing(viewer.ID, author.ID)
	}

	c.HTML(http.StatusOK, "profile.tmpl", gin.H{
		"user":            c.Value("user"),
		"author":          author,
		"posts":           posts,
		"page":            page,
		"followers":       followers,
		"following_count": followingCount,
		"following":       following,
	})
}

// PostDetail 渲染帖子详情，包括评论列表和评论表单
func (h *PostHandler) PostDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.NotFoundPage(c)
		return
	}

	post, comments, err := h.postService.PostDetail(id)
	if err != nil {
		if errors.IsNotFound(err) {
			errors.NotFoundPage(c)
			return
		}
		errors.HandleError(c, err)
		return
	}

	isAuthor := false
	if viewer := currentUser(c); viewer != nil {
		isAuthor = viewer.ID == post.AuthorID
	}

	c.HTML(http.StatusOK, "post_detail.tmpl", gin.H{
		"user":      c.Value("user"),
		"post":      post,
		"comments":  comments,
		"is_author": isAuthor,
	})
}

// CreatePage 渲染发布帖子的表单页
func (h *PostHandler) CreatePage(c *gin.Context) {
	groups, err := h.groupService.List()
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrDatabase, "获取社区列表失败", err))
		return
	}

	c.HTML(http.StatusOK, "create_post.tmpl", gin.H{
		"user":   c.Value("user"),
		"groups": groups,
		"text":   "",
		"group":  "",
		"errors": form.FieldErrors{},
	})
}

// Create 处理发布表单。校验失败时带错误重新渲染表单，
// 成功后跳转到作者的个人主页。
func (h *PostHandler) Create(c *gin.Context) {
	viewer := currentUser(c)

	f, image, group, fieldErrs, err := h.parsePostForm(c)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if !fieldErrs.Valid() {
		h.renderPostForm(c, f, fieldErrs, false, 0)
		return
	}

	imagePath, err := h.saveImage(image)
	if err != nil {
		util.Logger.Error("图片上传失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "图片上传失败", err))
		return
	}

	if _, err := h.postService.CreatePost(viewer.ID, f.Text, group, imagePath); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrDatabase, "创建帖子失败", err))
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+viewer.Username+"/")
}

// EditPage 渲染编辑表单，非作者直接跳回帖子详情
func (h *PostHandler) EditPage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.NotFoundPage(c)
		return
	}

	post, err := h.postService.GetPost(id)
	if err != nil {
		if errors.IsNotFound(err) {
			errors.NotFoundPage(c)
			return
		}
		errors.HandleError(c, err)
		return
	}

	viewer := currentUser(c)
	if viewer.ID != post.AuthorID {
		c.Redirect(http.StatusFound, postDetailPath(id))
		return
	}

	f := &form.PostForm{Text: post.Text}
	if post.Group != nil {
		f.Group = post.Group.Slug
	}
	h.renderPostForm(c, f, form.FieldErrors{}, true, id)
}

// Edit 处理编辑表单。编辑是唯一的原地修改路径：
// 授权先于表单处理，非作者的请求不触碰表单和存储，直接跳回帖子详情。
func (h *PostHandler) Edit(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.NotFoundPage(c)
		return
	}

	post, err := h.postService.GetPost(id)
	if err != nil {
		if errors.IsNotFound(err) {
			errors.NotFoundPage(c)
			return
		}
		errors.HandleError(c, err)
		return
	}

	viewer := currentUser(c)
	if viewer.ID != post.AuthorID {
		c.Redirect(http.StatusFound, postDetailPath(id))
		return
	}

	f, image, group, fieldErrs, err := h.parsePostForm(c)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if !fieldErrs.Valid() {
		h.renderPostForm(c, f, fieldErrs, true, id)
		return
	}

	imagePath, err := h.saveImage(image)
	if err != nil {
		util.Logger.Error("图片上传失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "图片上传失败", err))
		return
	}

	if err := h.postService.EditPost(id, viewer.ID, f.Text, group, imagePath); err != nil {
		if errors.IsNotFound(err) {
			errors.NotFoundPage(c)
			return
		}
		errors.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusFound, postDetailPath(id))
}

// AddComment 处理评论表单，成功与否都回到帖子详情页
func (h *PostHandler) AddComment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.NotFoundPage(c)
		return
	}

	f := &form.CommentForm{Text: c.PostForm("text")}
	if f.Validate().Valid() {
		viewer := currentUser(c)
		if _, err := h.postService.AddComment(id, viewer.ID, f.Text); err != nil {
			if errors.IsNotFound(err) {
				errors.NotFoundPage(c)
				return
			}
			errors.HandleError(c, err)
			return
		}
	}

	c.Redirect(http.StatusFound, postDetailPath(id))
}

// parsePostForm 解析并校验发布/编辑共用的表单字段。
// 社区查不到算字段错误，数据库故障原样向上返回。
func (h *PostHandler) parsePostForm(c *gin.Context) (*form.PostForm, *multipart.FileHeader, *model.Group, form.FieldErrors, error) {
	f := &form.PostForm{
		Text:  c.PostForm("text"),
		Group: c.PostForm("group"),
	}

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	fieldErrs := f.Validate(image)

	var group *model.Group
	if f.Group != "" {
		group, err = h.groupService.GetBySlug(f.Group)
		if err != nil {
			if !errors.IsNotFound(err) {
				return nil, nil, nil, nil, errors.Wrap(errors.ErrDatabase, "查询社区失败", err)
			}
			group = nil
			fieldErrs["group"] = "请选择已有的社区"
		}
	}

	return f, image, group, fieldErrs, nil
}

func (h *PostHandler) renderPostForm(c *gin.Context, f *form.PostForm, fieldErrs form.FieldErrors, isEdit bool, postID int) {
	groups, err := h.groupService.List()
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrDatabase, "获取社区列表失败", err))
		return
	}

	c.HTML(http.StatusOK, "create_post.tmpl", gin.H{
		"user":    c.Value("user"),
		"groups":  groups,
		"text":    f.Text,
		"group":   f.Group,
		"errors":  fieldErrs,
		"is_edit": isEdit,
		"post_id": postID,
	})
}

// saveImage 保存上传的图片并返回相对路径，没有图片时返回空串
func (h *PostHandler) saveImage(image *multipart.FileHeader) (string, error) {
	if image == nil {
		return "", nil
	}
	filename := util.GenerateUniqueFilename(image.Filename)
	return h.storage.UploadFile(image, "posts/"+filename)
}

func pageNumber(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return page
}

func postDetailPath(id int) string {
	return fmt.Sprintf("/posts/%d/", id)
}

func currentUser(c *gin.Context) *model.User {
	if user, ok := c.Value("user").(*model.User); ok {
		return user
	}
	return nil
}
