package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog-platform/config"
	"blog-platform/internal/cache"
	"blog-platform/internal/repository/mysql"
	"blog-platform/internal/router"
	"blog-platform/internal/service"
	"blog-platform/internal/storage"
	"blog-platform/internal/util"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			util.Logger.Error("程序发生严重错误", zap.Any("error", r))
		}
	}()

	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	// 设置数据库连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBHost,
		config.AppConfig.DBPort,
		config.AppConfig.DBName)

	// 连接数据库
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}
	defer db.Close()

	// 测试数据库连接
	if err := db.Ping(); err != nil {
		util.Logger.Fatal("数据库连接测试失败", zap.Error(err))
	}
	util.Logger.Info("数据库连接成功")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 应用数据库迁移
	if err := mysql.ApplyMigrations(db, config.AppConfig.MigrationsPath); err != nil {
		util.Logger.Fatal("数据库迁移失败", zap.Error(err))
	}
	util.Logger.Info("数据库迁移完成")

	// 初始化图片存储
	store := initStorage()

	// 初始化整页缓存
	pageCache := initCache()

	// 初始化存储库、服务和处理器
	userRepo := mysql.NewUserRepository(db)
	groupRepo := mysql.NewGroupRepository(db)
	postRepo := mysql.NewPostRepository(db)
	commentRepo := mysql.NewCommentRepository(db)
	followRepo := mysql.NewFollowRepository(db)

	userService := service.NewUserService(userRepo)
	groupService := service.NewGroupService(groupRepo)
	postService := service.NewPostService(postRepo, commentRepo, userRepo)
	followService := service.NewFollowService(followRepo, postRepo, commentRepo)

	r := router.New(router.Deps{
		UserService:   userService,
		GroupService:  groupService,
		PostService:   postService,
		FollowService: followService,
		Storage:       store,
		CacheStore:    pageCache,
		CacheTTL:      time.Duration(config.AppConfig.CacheTTL) * time.Second,
		MediaRoot:     config.AppConfig.MediaRoot,
	})

	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	// 在一个新的 goroutine 中启动服务器
	go func() {
		util.Logger.Info("服务器正在启动，监听端口 :8080")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Fatal("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭")
}

// initStorage 按配置选择本地或 S3 图片存储
func initStorage() storage.Storage {
	switch config.AppConfig.StorageBackend {
	case "s3":
		s3Storage, err := storage.NewS3Storage(config.AppConfig.S3Region, config.AppConfig.S3Bucket)
		if err != nil {
			util.Logger.Fatal("初始化 S3 存储失败", zap.Error(err))
		}
		util.Logger.Info("使用 S3 图片存储", zap.String("bucket", config.AppConfig.S3Bucket))
		return s3Storage
	default:
		localStorage, err := storage.NewLocalStorage(config.AppConfig.MediaRoot)
		if err != nil {
			util.Logger.Fatal("初始化本地存储失败", zap.Error(err))
		}
		util.Logger.Info("使用本地图片存储", zap.String("path", config.AppConfig.MediaRoot))
		return localStorage
	}
}

// initCache 按配置选择内存或 Redis 整页缓存
func initCache() cache.Store {
	switch config.AppConfig.CacheBackend {
	case "redis":
		util.Logger.Info("使用 Redis 整页缓存", zap.String("addr", config.AppConfig.RedisAddr))
		return cache.NewRedisStore(&redis.Options{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
		})
	default:
		util.Logger.Info("使用内存整页缓存")
		return cache.NewMemoryStore()
	}
}
