package follow

import (
	"net/http"
	"strconv"

	"blog-platform/internal/errors"
	"blog-platform/internal/model"
	"blog-platform/internal/service"

	"github.com/gin-gonic/gin"
)

// FollowHandler 实现关注流页面和关注/取消关注操作
type FollowHandler struct {
	followService *service.FollowService
	userService   *service.UserService
}

func NewFollowHandler(followService *service.FollowService, userService *service.UserService) *FollowHandler {
	return &FollowHandler{
		followService: followService,
		userService:   userService,
	}
}

// Index 渲染当前用户的关注流
func (h *FollowHandler) Index(c *gin.Context) {
	viewer := currentUser(c)

	posts, page, err := h.followService.Feed(viewer.ID, pageNumber(c))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrDatabase, "获取关注流失败", err))
		return
	}

	c.HTML(http.StatusOK, "follow.tmpl", gin.H{
		"user":  c.Value("user"),
		"posts": posts,
		"page":  page,
	})
}

// Follow 关注某作者后跳回其主页。自关注不建立关注边，只跳转。
func (h *FollowHandler) Follow(c *gin.Context) {
	author, err := h.userService.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.IsNotFound(err) {
			errors.NotFoundPage(c)
			return
		}
		errors.HandleError(c, err)
		return
	}

	viewer := currentUser(c)
	if err := h.followService.Follow(viewer.ID, author.ID); err != nil {
		if errors.Code(err) != errors.ErrSelfFollow {
			errors.HandleError(c, err)
			return
		}
	}

	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

// Unfollow 取消关注某作者后跳回其主页
func (h *FollowHandler) Unfollow(c *gin.Context) {
	author, err := h.userService.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.IsNotFound(err) {
			errors.NotFoundPage(c)
			return
		}
		errors.HandleError(c, err)
		return
	}

	viewer := currentUser(c)
	if err := h.followService.Unfollow(viewer.ID, author.ID); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

func pageNumber(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return page
}

func currentUser(c *gin.Context) *model.User {
	if user, ok := c.Value("user").(*model.User); ok {
		return user
	}
	return nil
}
