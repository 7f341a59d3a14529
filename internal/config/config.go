package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Port           string        // 本地监听地址
	PlatformURL    string        // 远程 STQ 平台地址
	DBPath         string        // 本地状态库（会话、查询日志、统计快照）
	RequestTimeout time.Duration // 平台请求默认超时
	RedisAddr      string        // 可选，为空则不启用缓存
	RedisPassword  string
	RedisDB        int
	StatsCacheTTL  time.Duration // 统计信息缓存时间
	FogStatsCron   string        // 雾服务器统计采集计划，为空则关闭
	MaxQuerySpanKm float64       // 查询空间范围上限（公里）
	RateLimit      int           // 本地接口每分钟限流
}

// Load 加载配置，优先读取环境变量，缺省使用默认值
func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", ":8090")
	viper.SetDefault("PLATFORM_URL", "http://localhost:8000")
	viper.SetDefault("DB_PATH", "./data/dashboard.db")
	viper.SetDefault("REQUEST_TIMEOUT", "120s")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("STATS_CACHE_TTL", "30s")
	viper.SetDefault("FOG_STATS_CRON", "@every 5m")
	viper.SetDefault("MAX_QUERY_SPAN_KM", 2000.0)
	viper.SetDefault("RATE_LIMIT", 300)

	// .env 不存在时直接使用环境变量
	_ = viper.ReadInConfig()

	return &Config{
		Port:           viper.GetString("PORT"),
		PlatformURL:    viper.GetString("PLATFORM_URL"),
		DBPath:         viper.GetString("DB_PATH"),
		RequestTimeout: viper.GetDuration("REQUEST_TIMEOUT"),
		RedisAddr:      viper.GetString("REDIS_ADDR"),
		RedisPassword:  viper.GetString("REDIS_PASSWORD"),
		RedisDB:        viper.GetInt("REDIS_DB"),
		StatsCacheTTL:  viper.GetDuration("STATS_CACHE_TTL"),
		FogStatsCron:   viper.GetString("FOG_STATS_CRON"),
		MaxQuerySpanKm: viper.GetFloat64("MAX_QUERY_SPAN_KM"),
		RateLimit:      viper.GetInt("RATE_LIMIT"),
	}
}
