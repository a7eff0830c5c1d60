// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contract-ai-go/internal/config"
	"contract-ai-go/internal/handler"
	"contract-ai-go/internal/middleware"
	"contract-ai-go/internal/pipeline"
	"contract-ai-go/internal/repository"
	"contract-ai-go/internal/service"
	"contract-ai-go/pkg/database"
	"contract-ai-go/pkg/es"
	"contract-ai-go/pkg/kafka"
	"contract-ai-go/pkg/log"
	"contract-ai-go/pkg/parser"
	"contract-ai-go/pkg/storage"
	"contract-ai-go/pkg/token"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("./configs/config.yaml")
	if err != nil {
		panic(err)
	}

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库、Redis、MinIO、Elasticsearch 和 Kafka
	db, err := database.NewMySQL(cfg.Database.MySQL.DSN)
	if err != nil {
		log.Fatal("failed to connect database", err)
	}
	rdb, err := database.NewRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	if err != nil {
		log.Fatal("failed to connect to redis", err)
	}
	objectStore, err := storage.NewMinioStore(cfg.MinIO)
	if err != nil {
		log.Fatal("初始化 MinIO 失败", err)
	}
	esClient, err := es.NewClient(cfg.Elasticsearch)
	if err != nil {
		log.Fatal("初始化 Elasticsearch 失败", err)
	}
	producer := kafka.NewProducer(cfg.Kafka)

	// 4. 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	contractRepo := repository.NewContractRepository(db)
	conversationRepo := repository.NewConversationRepository(rdb)

	// 5. 初始化 Service (依赖注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireMinutes)
	parserClient := parser.NewMockClient()
	userService := service.NewUserService(userRepo, jwtManager)
	contractService := service.NewContractService(contractRepo, parserClient, objectStore, producer)
	qaService := service.NewQAService(contractRepo, conversationRepo)

	// 6. 初始化分析管道 (Processor) 并启动后台 Kafka 消费者
	processor := pipeline.NewProcessor(contractRepo, esClient)
	go kafka.StartConsumer(cfg.Kafka, rdb, processor)

	// 7. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(middleware.RequestLogger(), gin.Recovery(), middleware.CORS(cfg.CORS.AllowedOrigins))

	// 8. 注册路由
	userHandler := handler.NewUserHandler(userService)
	contractHandler := handler.NewContractHandler(contractService)
	qaHandler := handler.NewQAHandler(qaService)

	// 公开路由
	r.POST("/signup", userHandler.Signup)
	r.POST("/login", userHandler.Login)

	// 需要认证的路由
	authed := r.Group("/")
	authed.Use(middleware.AuthMiddleware(jwtManager, userService))
	{
		authed.POST("/upload", contractHandler.Upload)
		authed.GET("/contracts", contractHandler.List)
		authed.GET("/contracts/:id", contractHandler.Detail)
		authed.POST("/ask", qaHandler.Ask)
	}

	// 9. 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	// 设置一个5秒的超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	log.Info("服务已优雅关闭")
}
