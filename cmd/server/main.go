package main

import (
	"context"
	"log"

	"github.com/jengzang/stq-dashboard-go/internal/api"
	"github.com/jengzang/stq-dashboard-go/internal/config"
	"github.com/jengzang/stq-dashboard-go/internal/database"
	"github.com/jengzang/stq-dashboard-go/internal/gateway"
	"github.com/jengzang/stq-dashboard-go/internal/handler"
	"github.com/jengzang/stq-dashboard-go/internal/monitor"
	"github.com/jengzang/stq-dashboard-go/internal/platform"
	"github.com/jengzang/stq-dashboard-go/internal/repository"
	"github.com/jengzang/stq-dashboard-go/internal/session"
	"github.com/jengzang/stq-dashboard-go/pkg/cache"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化本地状态库
	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	// 凭证存储，重启后恢复会话
	store, err := session.NewSQLiteStore(db)
	if err != nil {
		log.Fatal("Failed to initialize credential store:", err)
	}

	// 平台网关客户端
	gw := gateway.NewClient(cfg.PlatformURL, store, cfg.RequestTimeout)
	gw.OnSessionExpired(func() {
		log.Printf("Platform session expired, dashboard must log in again")
	})

	// 可选的 redis 统计缓存
	var statsCache *cache.Cache
	if cfg.RedisAddr != "" {
		statsCache, err = cache.New(context.Background(), cache.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.StatsCacheTTL,
		})
		if err != nil {
			log.Printf("Redis cache disabled: %v", err)
			statsCache = nil
		}
		defer statsCache.Close()
	}

	// 平台领域客户端
	authAPI := platform.NewAuthAPI(gw)
	tracksAPI := platform.NewTracksAPI(gw, statsCache)
	fogAPI := platform.NewFogAPI(gw, statsCache)
	queryAPI := platform.NewQueryAPI(gw)
	octreeAPI := platform.NewOctreeAPI(gw)

	// 本地持久化
	queryLogRepo := repository.NewQueryLogRepository(db)
	fogStatsRepo := repository.NewFogStatsRepository(db)

	// 雾服务器统计采集
	if cfg.FogStatsCron != "" {
		collector := monitor.NewCollector(fogAPI, fogStatsRepo)
		if err := collector.Start(cfg.FogStatsCron); err != nil {
			log.Printf("Fog stats collector disabled: %v", err)
		} else {
			defer collector.Stop()
		}
	}

	// 初始化路由
	router := api.SetupRouter(cfg, api.Handlers{
		Session: handler.NewSessionHandler(authAPI, store),
		Tracks:  handler.NewTrackHandler(tracksAPI),
		Fog:     handler.NewFogHandler(fogAPI, fogStatsRepo),
		Query:   handler.NewQueryHandler(queryAPI, queryLogRepo, cfg.MaxQuerySpanKm),
		Octree:  handler.NewOctreeHandler(octreeAPI),
	})

	// 启动服务
	log.Printf("Dashboard gateway starting on %s (platform: %s)", cfg.Port, cfg.PlatformURL)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
