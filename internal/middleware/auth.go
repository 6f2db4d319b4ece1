package middleware

import (
	"net/http"
	"net/url"

	"blog-platform/internal/service"
	"blog-platform/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthCookieName 保存登录令牌的 cookie 名
const AuthCookieName = "auth_token"

// CurrentUser 尝试从 cookie 解析当前用户并放入请求上下文，
// 解析失败不拦截请求，页面按匿名用户渲染
func CurrentUser(userService *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(AuthCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		userID, err := util.ValidateToken(token)
		if err != nil {
			util.Logger.Debug("无效的登录令牌", zap.Error(err))
			c.Next()
			return
		}

		user, err := userService.GetUserByID(userID)
		if err != nil {
			c.Next()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Next()
	}
}

// LoginRequired 要求已登录，匿名请求重定向到登录页并携带回跳地址
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get("user_id"); !ok {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, "/auth/login/?next="+next)
			c.Abort()
			return
		}
		c.Next()
	}
}
