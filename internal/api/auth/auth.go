package auth

import (
	"net/http"
	"net/url"

	"blog-platform/internal/errors"
	"blog-platform/internal/middleware"
	"blog-platform/internal/model"
	"blog-platform/internal/service"
	"blog-platform/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler 处理注册、登录和退出
type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService}
}

// SignupPage 渲染注册页
func (h *AuthHandler) SignupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.tmpl", gin.H{
		"user":     c.Value("user"),
		"username": "",
		"email":    "",
	})
}

// Signup 处理注册表单，成功后直接登录并跳转首页
func (h *AuthHandler) Signup(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")

	if username == "" || email == "" || password == "" {
		c.HTML(http.StatusOK, "signup.tmpl", gin.H{
			"user":     c.Value("user"),
			"username": username,
			"email":    email,
			"error":    "请填写全部字段",
		})
		return
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: password,
	}
	if err := h.userService.Register(user); err != nil {
		message := "注册失败"
		if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.ErrUserExists {
			message = appErr.Message
		} else {
			util.Logger.Error("注册失败", zap.Error(err))
		}
		c.HTML(http.StatusOK, "signup.tmpl", gin.H{
			"user":     c.Value("user"),
			"username": username,
			"email":    email,
			"error":    message,
		})
		return
	}

	h.setAuthCookie(c, user.ID)
	c.Redirect(http.StatusFound, "/")
}

// LoginPage 渲染登录页，保留 next 回跳参数
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.tmpl", gin.H{
		"user":     c.Value("user"),
		"username": "",
		"next":     c.Query("next"),
	})
}

// Login 处理登录表单，成功后跳转到 next 或首页
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	next := c.PostForm("next")

	user, err := h.userService.Login(username, password)
	if err != nil {
		c.HTML(http.StatusOK, "login.tmpl", gin.H{
			"user":     c.Value("user"),
			"username": username,
			"next":     next,
			"error":    "用户名或密码不正确",
		})
		return
	}

	h.setAuthCookie(c, user.ID)
	c.Redirect(http.StatusFound, safeNext(next))
}

// Logout 清除登录 cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) setAuthCookie(c *gin.Context, userID int) {
	token, err := util.GenerateToken(userID)
	if err != nil {
		util.Logger.Error("生成令牌失败", zap.Error(err))
		return
	}
	c.SetCookie(middleware.AuthCookieName, token, 24*3600, "/", "", false, true)
}

// safeNext 只允许跳转到站内路径
func safeNext(next string) string {
	if next == "" {
		return "/"
	}
	decoded, err := url.QueryUnescape(next)
	if err != nil || len(decoded) == 0 || decoded[0] != '/' {
		return "/"
	}
	// 拒绝 //host 形式的协议相对地址
	if len(decoded) > 1 && decoded[1] == '/' {
		return "/"
	}
	return decoded
}
