package config

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"rentledger/jobs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

var (
	DB          *gorm.DB
	RedisClient *redis.Client
)

func InitApp(cfg AppConfig) (*gin.Engine, *melody.Melody, *cron.Cron, error) {
	router := gin.Default()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", "X-Request-ID")
	configCors.AddExposeHeaders("X-Request-ID")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}
	router.Use(cors.New(configCors))

	router.SetTrustedProxies(nil)

	if err := initComponents(cfg); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize components: %v", err)
	}

	m := melody.New()

	c := cron.New()

	return router, m, c, nil
}

func initComponents(cfg AppConfig) error {
	var err error
	DB, err = ConnectDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to db: %v", err)
	}

	RedisClient, err = ConnectRedis(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}
	if RedisClient == nil && cfg.LockBackend == "redis" {
		return fmt.Errorf("LOCK_BACKEND=redis requires REDIS_ADDR")
	}

	log.Println("All components initialized successfully")
	return nil
}

func InitCronJobs(c *cron.Cron, spec string, warmer jobs.VacancyWarmer) error {
	// Gọi InitCronJobs từ package jobs
	if err := jobs.InitCronJobs(c, spec, warmer); err != nil {
		return fmt.Errorf("failed to initialize cron jobs: %v", err)
	}
	return nil
}

func InitWebSocket(router *gin.Engine, m *melody.Melody) {
	router.GET("/ws", func(c *gin.Context) {
		m.HandleRequest(c.Writer, c.Request)
	})
	log.Println("WebSocket initialized successfully")
}

func InitHealthCheck(router *gin.Engine) {
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
}
