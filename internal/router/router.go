package router

import (
	"time"

	"blog-platform/config"
	"blog-platform/internal/api/auth"
	"blog-platform/internal/api/follow"
	"blog-platform/internal/api/posts"
	"blog-platform/internal/cache"
	"blog-platform/internal/errors"
	"blog-platform/internal/middleware"
	"blog-platform/internal/service"
	"blog-platform/internal/storage"
	"blog-platform/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps 汇总路由所需的服务和基础设施
type Deps struct {
	UserService   *service.UserService
	GroupService  *service.GroupService
	PostService   *service.PostService
	FollowService *service.FollowService
	Storage       storage.Storage
	CacheStore    cache.Store
	CacheTTL      time.Duration
	MediaRoot     string
}

// New 构建整个站点的路由。
// 页面全部服务端渲染，首页经过整页缓存中间件。
func New(deps Deps) *gin.Engine {
	errorMonitor := middleware.NewErrorMonitor()

	r := gin.New()
	r.Use(gin.Logger())

	// 添加中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.BaseURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	r.Use(cors.New(corsConfig))

	// 页面模板和上传图片
	r.SetHTMLTemplate(web.Templates())
	r.Static("/media", deps.MediaRoot)

	// 所有页面都按当前登录用户渲染
	r.Use(middleware.CurrentUser(deps.UserService))

	authHandler := auth.NewAuthHandler(deps.UserService)
	postHandler := posts.NewPostHandler(deps.PostService, deps.GroupService, deps.UserService, deps.FollowService, deps.Storage)
	followHandler := follow.NewFollowHandler(deps.FollowService, deps.UserService)

	// 首页走整页缓存，其余页面每次渲染
	r.GET("/", middleware.PageCache(deps.CacheStore, deps.CacheTTL), postHandler.Index)
	r.GET("/group/:slug/", postHandler.GroupPosts)
	r.GET("/profile/:username/", postHandler.Profile)
	r.GET("/posts/:id/", postHandler.PostDetail)

	// 需要登录的路由
	authorized := r.Group("/")
	authorized.Use(middleware.LoginRequired())
	{
		authorized.GET("/create/", postHandler.CreatePage)
		authorized.POST("/create/", postHandler.Create)
		authorized.GET("/posts/:id/edit/", postHandler.EditPage)
		authorized.POST("/posts/:id/edit/", postHandler.Edit)
		authorized.POST("/posts/:id/comment/", postHandler.AddComment)

		authorized.GET("/follow/", followHandler.Index)
		authorized.POST("/profile/:username/follow/", followHandler.Follow)
		authorized.POST("/profile/:username/unfollow/", followHandler.Unfollow)
	}

	// 认证相关路由
	r.GET("/auth/signup/", authHandler.SignupPage)
	r.POST("/auth/signup/", authHandler.Signup)
	r.GET("/auth/login/", authHandler.LoginPage)
	r.POST("/auth/login/", authHandler.Login)
	r.POST("/auth/logout/", authHandler.Logout)

	r.NoRoute(func(c *gin.Context) {
		errors.NotFoundPage(c)
	})

	return r
}
