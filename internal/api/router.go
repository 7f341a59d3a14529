package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/stq-dashboard-go/internal/config"
	"github.com/jengzang/stq-dashboard-go/internal/handler"
	"github.com/jengzang/stq-dashboard-go/internal/middleware"
)

// Handlers bundles the dashboard endpoint handlers
type Handlers struct {
	Session *handler.SessionHandler
	Tracks  *handler.TrackHandler
	Fog     *handler.FogHandler
	Query   *handler.QueryHandler
	Octree  *handler.OctreeHandler
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(cfg.RateLimit, time.Minute))

	// CORS 中间件，仪表盘与网关通常不同源
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "STQ dashboard gateway is running",
		})
	})

	api := r.Group("/api")
	{
		// 会话
		sess := api.Group("/session")
		{
			sess.POST("/login", h.Session.Login)
			sess.POST("/register", h.Session.Register)
			sess.POST("/logout", h.Session.Logout)
			sess.GET("", h.Session.Status)
			sess.GET("/user", h.Session.CurrentUser)
		}

		// 轨迹数据集
		tracks := api.Group("/tracks")
		{
			tracks.GET("", h.Tracks.List)
			tracks.GET("/statistics", h.Tracks.Statistics)
			tracks.GET("/export", h.Tracks.Export)
			tracks.POST("/import", h.Tracks.Import)
			tracks.DELETE("/:id", h.Tracks.Delete)
		}

		// 雾服务器管理
		fog := api.Group("/fog-servers")
		{
			fog.GET("", h.Fog.List)
			fog.POST("", h.Fog.Create)
			fog.PUT("/:id", h.Fog.Update)
			fog.DELETE("/:id", h.Fog.Delete)
			fog.GET("/stats", h.Fog.Stats)
			fog.GET("/stats/history", h.Fog.StatsHistory)
			fog.POST("/grouping", h.Fog.TriggerGrouping)
			fog.GET("/task/:id", h.Fog.TaskStatus)
		}

		// 轨迹查询
		q := api.Group("/query")
		{
			q.POST("", h.Query.Process)
			q.GET("/history", h.Query.History)
		}

		// 八叉树索引维护
		octree := api.Group("/octree")
		{
			octree.POST("/migration", h.Octree.Migrate)
			octree.POST("/trajectory-migration", h.Octree.MigrateTrajectory)
			octree.GET("/nodes", h.Octree.Nodes)
		}
	}

	return r
}
