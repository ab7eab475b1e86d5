package router

import (
	"Iris_Blog/internal/config"
	"Iris_Blog/internal/handler"
	"Iris_Blog/internal/middleware"

	"github.com/gin-gonic/gin"
)

func InitRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	user := handler.NewUserHandler(cfg.SMTP, cfg.BaseURL)
	follow := handler.NewFollowHandler()
	post := handler.NewPostHandler()
	message := handler.NewMessageHandler()
	group := handler.NewGroupHandler()
	notification := handler.NewNotificationHandler()
	task := handler.NewTaskHandler(cfg.SMTP)

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
		userGroup.POST("/reset/request", user.ResetRequest)
		userGroup.POST("/reset/confirm", user.ResetPassword)
		userGroup.GET("", user.List)
		userGroup.GET("/:id", user.Profile)
	}

	// token 相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// 登录态账号接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.POST("/logout", user.Logout)
		authGroup.POST("/change-password", user.ChangePassword)
		authGroup.POST("/about-me", user.UpdateAboutMe)
	}

	// 用户关注相关接口
	followGroup := r.Group("/api/follow")
	followGroup.Use(middleware.AuthMiddleware())
	{
		followGroup.POST("/", follow.Follow)
		followGroup.GET("/followers", follow.ListFollowers)
		followGroup.GET("/following", follow.ListFollowing)
		followGroup.GET("/relation", follow.Relation)
	}

	// 帖子与时间线接口
	postGroup := r.Group("/api/post")
	postGroup.Use(middleware.AuthMiddleware())
	{
		postGroup.POST("/create", post.CreatePost)
		postGroup.GET("/feed", post.Feed)
		postGroup.GET("/explore", post.Explore)
	}

	// 私信接口
	messageGroup := r.Group("/api/message")
	messageGroup.Use(middleware.AuthMiddleware())
	{
		messageGroup.POST("/send", message.Send)
		messageGroup.GET("/inbox", message.Inbox)
		messageGroup.GET("/unread", message.Unread)
	}

	// 群组接口
	groupRoutes := r.Group("/api/group")
	groupRoutes.Use(middleware.AuthMiddleware())
	{
		groupRoutes.POST("/create", group.Create)
		groupRoutes.GET("", group.List)
		groupRoutes.GET("/:id", group.Get)
		groupRoutes.PUT("/:id", group.Rename)
		groupRoutes.DELETE("/:id", group.Delete)
		groupRoutes.POST("/:id/join", group.Join)
		groupRoutes.POST("/:id/leave", group.Leave)
		groupRoutes.GET("/:id/members", group.Members)
		groupRoutes.PUT("/:id/members/role", group.SetRole)
		groupRoutes.DELETE("/:id/members/:uid", group.RemoveMember)
	}

	// 通知轮询接口
	notificationGroup := r.Group("/api/notification")
	notificationGroup.Use(middleware.AuthMiddleware())
	{
		notificationGroup.GET("/", notification.Poll)
	}

	// 任务接口；进度/收口回调来自内网 job runner，不走用户鉴权
	taskGroup := r.Group("/api/task")
	taskGroup.Use(middleware.AuthMiddleware())
	{
		taskGroup.GET("/:id", task.Status)
		taskGroup.POST("/export/posts", task.ExportPosts)
	}
	callbackGroup := r.Group("/internal/task")
	{
		callbackGroup.POST("/:id/progress", task.ReportProgress)
		callbackGroup.POST("/:id/complete", task.Complete)
	}

	return r
}
