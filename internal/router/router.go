package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nardchat/internal/handlers"
	"nardchat/internal/middleware"
)

type Deps struct {
	Story        *handlers.StoryHandler
	Vote         *handlers.VoteHandler
	Auth         *handlers.AuthHandler
	Admin        *handlers.AdminHandler
	Notification *handlers.NotificationHandler
	User         *handlers.UserHandler
	RateLimiter  *middleware.RateLimiter
	Origins      []string
	ManifestPath string // optional farcaster.json
}

// RegisterRoutes expects sessions and LoadUser to be installed on r already.
func RegisterRoutes(r *gin.Engine, d Deps) {
	corsCfg := cors.Config{
		AllowOrigins:     d.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(d.Origins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if d.ManifestPath != "" {
		r.StaticFile("/.well-known/farcaster.json", d.ManifestPath)
	}

	limited := d.RateLimiter.Handler()
	api := r.Group("/api")

	// 公共路由 (Public Routes)
	api.GET("/stories", d.Story.List)                  // 故事列表 ?sort=hot|new
	api.GET("/stories/:id", d.Story.Detail)            // 故事详情 + 评论树
	api.GET("/stories/:id/comments", d.Story.Comments) // 评论树
	api.GET("/users/:wallet", d.User.Profile)          // 用户公开资料
	api.GET("/badges", d.User.Badges)                  // 徽章列表
	api.GET("/contract", d.Admin.Contract)             // 合约信息

	api.POST("/auth/challenge", limited, d.Auth.Challenge) // 获取签名 nonce
	api.POST("/auth/verify", limited, d.Auth.Verify)       // 校验签名并登录
	api.POST("/auth/logout", d.Auth.Logout)                // 退出登录

	// 受保护路由 (Protected Routes)
	authorized := api.Group("")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/me", d.Auth.Me)                                         // 当前身份
		authorized.POST("/stories", limited, d.Story.Create)                     // 发布故事
		authorized.POST("/stories/:id/comments", limited, d.Story.CreateComment) // 发表评论
		authorized.POST("/comments/:id/vote", limited, d.Vote.Vote)              // 投票

		authorized.GET("/notifications", d.Notification.List)              // 通知列表
		authorized.POST("/notifications/read-all", d.Notification.ReadAll) // 全部标记为已读
		authorized.POST("/notifications/:id/read", d.Notification.Read)    // 标记单条为已读
		authorized.DELETE("/notifications/:id", d.Notification.Delete)     // 删除单条通知
	}

	// 管理员路由 (Admin Routes)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.POST("/stories/:id/archive", d.Admin.Archive) // 生成链上归档调用
	}
}
