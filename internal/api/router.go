package api

import (
	"github.com/gin-gonic/gin"

	"github.com/cmac277/webgen4/config"
	"github.com/cmac277/webgen4/internal/api/handler"
	"github.com/cmac277/webgen4/internal/api/middleware"
)

type Router struct {
	videoHandler      *handler.VideoHandler
	engagementHandler *handler.EngagementHandler
	websocketHandler  *handler.WebSocketHandler
	cfg               *config.Config
}

func NewRouter(
	videoHandler *handler.VideoHandler,
	engagementHandler *handler.EngagementHandler,
	websocketHandler *handler.WebSocketHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		videoHandler:      videoHandler,
		engagementHandler: engagementHandler,
		websocketHandler:  websocketHandler,
		cfg:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// WebSocket 互动推送
		api.GET("/ws", r.websocketHandler.Handle)

		// 公开接口 - 视频（可选认证，登录用户详情中附带反应状态）
		videos := api.Group("/videos")
		videos.Use(middleware.OptionalAuth(r.cfg.JWT.Secret))
		{
			videos.GET("", r.videoHandler.List)
			videos.GET("/:id", r.videoHandler.Get)
			videos.GET("/:id/engagement", r.engagementHandler.GetEngagement)
			videos.POST("/:id/view", r.engagementHandler.RecordView)
		}

		// 需要认证的接口
		authenticated := api.Group("/videos")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			authenticated.POST("", r.videoHandler.Create)
			authenticated.POST("/:id/like", r.engagementHandler.Like)
			authenticated.POST("/:id/dislike", r.engagementHandler.Dislike)
			authenticated.GET("/:id/reaction", r.engagementHandler.GetViewerReaction)
		}

		// 当前用户的反应历史
		me := api.Group("/users/me")
		me.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			me.GET("/reactions", r.engagementHandler.ListMyReactions)
		}
	}

	return engine
}
