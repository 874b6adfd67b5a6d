package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cmac277/webgen4/config"
	"github.com/cmac277/webgen4/internal/api"
	"github.com/cmac277/webgen4/internal/api/handler"
	"github.com/cmac277/webgen4/internal/database"
	"github.com/cmac277/webgen4/internal/pkg/cache"
	"github.com/cmac277/webgen4/internal/pkg/pubsub"
	"github.com/cmac277/webgen4/internal/pkg/ws"
	"github.com/cmac277/webgen4/internal/repository"
	"github.com/cmac277/webgen4/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化互动快照缓存与更新广播
	var engagementCache *cache.EngagementCache
	if cfg.Engagement.CacheTTLSeconds > 0 {
		ttl := time.Duration(cfg.Engagement.CacheTTLSeconds) * time.Second
		engagementCache = cache.NewEngagementCache(rdb, ttl)
	}
	publisher := pubsub.NewPublisher(rdb)

	// 初始化 WebSocket Hub，订阅互动更新并转发给观看中的客户端
	wsHub := ws.NewHub()
	subscriber := pubsub.NewSubscriber(rdb)
	go func() {
		err := subscriber.Subscribe(context.Background(), func(msg *pubsub.EngagementMessage) {
			_ = wsHub.BroadcastToVideo(msg.VideoID, &ws.Message{
				Type: msg.Type,
				Data: msg,
			})
		})
		if err != nil && err != context.Canceled {
			log.Printf("Engagement subscriber stopped: %v", err)
		}
	}()
	log.Println("WebSocket hub started")

	// 初始化 Repository
	videoRepo := repository.NewVideoRepository(db)
	reactionRepo := repository.NewReactionRepository(db)

	// 初始化 Service
	engagementService := service.NewEngagementService(db, videoRepo, reactionRepo, engagementCache, publisher, cfg)
	videoService := service.NewVideoService(videoRepo, engagementService, cfg)

	// 初始化 Handler
	videoHandler := handler.NewVideoHandler(videoService)
	engagementHandler := handler.NewEngagementHandler(engagementService)
	websocketHandler := handler.NewWebSocketHandler(wsHub, cfg.JWT.Secret)

	// 初始化 Router
	router := api.NewRouter(
		videoHandler,
		engagementHandler,
		websocketHandler,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
