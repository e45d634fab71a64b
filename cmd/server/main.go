package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mindbridge/mindbridge-backend/api"
	"github.com/mindbridge/mindbridge-backend/internal/platform/config"
	"github.com/mindbridge/mindbridge-backend/internal/platform/database"
	"github.com/mindbridge/mindbridge-backend/internal/platform/health"
	"github.com/mindbridge/mindbridge-backend/internal/platform/shutdown"
	"github.com/mindbridge/mindbridge-backend/internal/platform/startup"
	"github.com/mindbridge/mindbridge-backend/pkg/lifecycle"
	"github.com/mindbridge/mindbridge-backend/pkg/token"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env文件用于本地开发时覆盖配置；生产环境直接用环境变量
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("无法加载配置: %v", err))
	}

	token.InitializeSecret(cfg.Auth.Secret, cfg.Auth.TokenTTLMinutes)
	database.InitDB(cfg.Database)
	database.InitRedis(cfg.Database.Redis)

	// 1. 阻塞式获取初始Run ID
	health.InitializeRunID()

	// 2. 执行应用首次启动初始化流程
	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 3. 阻塞式执行一次启动后健康检查
	fmt.Println("正在执行启动后健康检查...")
	health.PerformCheck()

	// 4. 在生命周期管理下启动后台的持续健康检查器
	gracefulMgr := lifecycle.NewManager()
	forcefulMgr := lifecycle.NewManager()
	healthHandle, err := gracefulMgr.NewServiceHandle("redis-health-checker")
	if err != nil {
		panic(err)
	}
	go health.StartRedisHealthCheck(healthHandle)

	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("Failed to start server: " + err.Error())
		}
	}()

	// 阻塞等待停机信号
	coordinator := shutdown.NewCoordinator(gracefulMgr, forcefulMgr)
	coordinator.ListenForSignalsAndShutdown(server)
}
