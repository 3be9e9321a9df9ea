package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell-api/internal/controller"
	"github.com/inkwell-blog/inkwell-api/internal/middleware"
)

// Setup 设置API路由
func Setup(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")

	// 用户相关路由
	setupUserRoutes(api, db)

	// 博客相关路由
	setupBlogRoutes(api, db)

	// 评论相关路由
	setupCommentRoutes(api, db)

	// 通知相关路由
	setupNotificationRoutes(api, db)

	// 图片相关路由
	setupImageRoutes(api)
}

// setupUserRoutes 设置用户相关路由
func setupUserRoutes(api *gin.RouterGroup, db *gorm.DB) {
	userApi := controller.NewUserApi(db)

	// 公开路由
	userRoutes := api.Group("/users")
	{
		// 注册
		userRoutes.POST("/register", userApi.Register)
		// 登录
		userRoutes.POST("/login", userApi.Login)
		// Google登录
		userRoutes.POST("/google-login", userApi.GoogleLogin)
		// 用户搜索
		userRoutes.GET("/search", userApi.Search)
		// 用户公开资料
		userRoutes.GET("/:username", userApi.GetProfile)
	}

	// 需要刷新令牌的路由
	refreshRoutes := api.Group("/users", middleware.RefreshAuth())
	{
		// 刷新令牌
		refreshRoutes.POST("/refresh", userApi.RefreshToken)
		// 登出
		refreshRoutes.POST("/logout", userApi.Logout)
	}

	// 需要认证的路由
	authRoutes := api.Group("/users", middleware.JWTAuth())
	{
		// 修改密码
		authRoutes.PUT("/password", userApi.ChangePassword)
		// 更新资料
		authRoutes.PUT("/profile", userApi.UpdateProfile)
		// 更新头像
		authRoutes.PUT("/avatar", userApi.UpdateAvatar)
	}
}

// setupBlogRoutes 设置博客相关路由
func setupBlogRoutes(api *gin.RouterGroup, db *gorm.DB) {
	blogApi := controller.NewBlogApi(db)

	// 公开路由
	blogRoutes := api.Group("/blogs")
	{
		// 最新博客列表
		blogRoutes.GET("", blogApi.List)
		// 搜索总数
		blogRoutes.GET("/count", blogApi.Count)
		// 热门博客
		blogRoutes.GET("/trending", blogApi.Trending)
	}

	// 需要认证的路由
	authRoutes := api.Group("/blogs", middleware.JWTAuth())
	{
		// 当前用户已写博客
		authRoutes.GET("/written", blogApi.UserBlogs)
		// 点赞/取消点赞
		authRoutes.POST("/:slug/like", blogApi.LikeToggle)
		// 点赞状态
		authRoutes.GET("/:slug/like", blogApi.IsLiked)
	}

	// 仅管理员可写，服务层仍二次校验作者归属
	adminRoutes := api.Group("/blogs", middleware.AdminAuth())
	{
		// 创建/更新博客
		adminRoutes.POST("", blogApi.Publish)
		// 删除博客
		adminRoutes.DELETE("/:slug", blogApi.Delete)
	}

	// 详情允许未登录访问，带令牌时支持edit模式
	api.GET("/blogs/:slug", middleware.OptionalAuth(), blogApi.Detail)
}

// setupCommentRoutes 设置评论相关路由
func setupCommentRoutes(api *gin.RouterGroup, db *gorm.DB) {
	commentApi := controller.NewCommentApi(db)

	// 公开路由
	commentRoutes := api.Group("/comments")
	{
		// 顶层评论列表
		commentRoutes.GET("", commentApi.List)
		// 回复列表
		commentRoutes.GET("/:id/replies", commentApi.Replies)
	}

	// 需要认证的路由
	authRoutes := api.Group("/comments", middleware.JWTAuth())
	{
		// 发布评论或回复
		authRoutes.POST("", commentApi.Create)
		// 删除评论及子树
		authRoutes.DELETE("/:id", commentApi.Delete)
	}
}

// setupNotificationRoutes 设置通知相关路由
func setupNotificationRoutes(api *gin.RouterGroup, db *gorm.DB) {
	notificationApi := controller.NewNotificationApi(db)

	routes := api.Group("/notifications", middleware.JWTAuth())
	{
		// 通知列表
		routes.GET("", notificationApi.List)
		// 通知计数
		routes.GET("/count", notificationApi.Count)
		// 是否有新通知
		routes.GET("/new", notificationApi.HasNew)
	}
}

// setupImageRoutes 设置图片相关路由
func setupImageRoutes(api *gin.RouterGroup) {
	imageApi := controller.NewImageApi()

	routes := api.Group("/images", middleware.JWTAuth())
	{
		// 签发直传URL
		routes.GET("/upload-url", imageApi.UploadURL)
	}
}
