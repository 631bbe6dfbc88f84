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

	"knowledge-wiki-go/internal/config"
	"knowledge-wiki-go/internal/handler"
	"knowledge-wiki-go/internal/middleware"
	"knowledge-wiki-go/internal/repository"
	"knowledge-wiki-go/internal/seed"
	"knowledge-wiki-go/internal/service"
	"knowledge-wiki-go/pkg/database"
	"knowledge-wiki-go/pkg/es"
	"knowledge-wiki-go/pkg/kafka"
	"knowledge-wiki-go/pkg/llm"
	"knowledge-wiki-go/pkg/log"
	"knowledge-wiki-go/pkg/storage"
	"knowledge-wiki-go/pkg/token"
	"knowledge-wiki-go/pkg/vectorizer"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库、Redis、对象存储、Elasticsearch 与 Kafka
	database.InitMySQL(cfg.Database.MySQL.DSN)
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	storage.InitMinIO(cfg.MinIO)
	if err := es.InitES(cfg.Elasticsearch); err != nil {
		log.Errorf("es 初始化失败 %s", err)
		return
	}
	kafka.InitProducer(cfg.Kafka)

	// 4. 加载词表并创建向量编码器
	vocab := vectorizer.Default()
	if cfg.Vocabulary.TermsFile != "" {
		loaded, err := vectorizer.LoadVocabulary(cfg.Vocabulary.TermsFile, cfg.Vocabulary.Model)
		if err != nil {
			log.Fatalf("加载词表失败: %v", err)
		}
		vocab = loaded
	}
	vec := vectorizer.New(vocab)
	log.Infof("向量编码器就绪, model: %s, dims: %d", vec.Model(), vec.Dimension())

	// 5. 初始化 Repository
	chunkRepo := repository.NewChunkRepository(database.DB, database.RDB)
	userRepo := repository.NewUserRepository(database.DB)

	// 6. 初始化 Service (依赖注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours, cfg.JWT.RefreshTokenExpireDays)
	llmClient := llm.NewClient(cfg.LLM)
	userService := service.NewUserService(userRepo, jwtManager)
	embeddingService := service.NewEmbeddingService(chunkRepo, vec)
	searchService := service.NewSearchService(chunkRepo, service.NewESSearcher(cfg.Elasticsearch.IndexName), vec, cfg.Retrieval)
	answerService := service.NewAnswerService(searchService, llmClient, cfg.LLM.Prompt)
	chunkService := service.NewChunkService(chunkRepo, cfg.Elasticsearch, seed.DemoChunks)

	// 7. 自举管理员账号
	if err := userService.EnsureAdmin(cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.Errorf("自举管理员账号失败: %v", err)
	}

	// 8. 启动后台 Kafka 消费者，入库批次异步补齐向量
	go kafka.StartConsumer(cfg.Kafka, embeddingService)

	// 9. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 10. 注册路由
	apiV1 := r.Group("/api/v1")
	{
		// Auth 路由组
		auth := apiV1.Group("/auth")
		{
			auth.POST("/refreshToken", handler.NewAuthHandler(userService).RefreshToken)
		}

		users := apiV1.Group("/users")
		{
			// 无需认证的路由 (公开访问)
			users.POST("/register", handler.NewUserHandler(userService).Register)
			users.POST("/login", handler.NewUserHandler(userService).Login)

			// 需要认证的路由 (仅限登录用户访问)
			authed := users.Group("/")
			authed.Use(middleware.AuthMiddleware(jwtManager, userService))
			{
				authed.GET("/me", handler.NewUserHandler(userService).GetProfile)
				authed.POST("/logout", handler.NewUserHandler(userService).Logout)
			}
		}

		// 检索与浏览路由（公开只读）
		searchHandler := handler.NewSearchHandler(searchService)
		chunkHandler := handler.NewChunkHandler(chunkService)
		statsHandler := handler.NewStatsHandler(chunkService)
		embeddingHandler := handler.NewEmbeddingHandler(embeddingService)

		apiV1.GET("/search", searchHandler.Lexical)
		apiV1.GET("/search/semantic", searchHandler.Semantic)
		apiV1.GET("/search/similar/:chunkId", searchHandler.Similar)
		apiV1.GET("/chunks/:chunkId", chunkHandler.Detail)
		apiV1.GET("/browse", chunkHandler.Browse)
		apiV1.GET("/stats", statsHandler.Stats)
		apiV1.GET("/tags", statsHandler.Tags)
		apiV1.GET("/categories", statsHandler.Categories)
		apiV1.GET("/projects", statsHandler.Projects)
		apiV1.GET("/filetypes", statsHandler.FileTypes)
		apiV1.GET("/orgs", statsHandler.Orgs)
		apiV1.GET("/trending", statsHandler.Trending)
		apiV1.GET("/embeddings/stats", embeddingHandler.Stats)

		// 写入类路由，需要认证
		authed := apiV1.Group("/")
		authed.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			authed.POST("/ask", handler.NewAnswerHandler(answerService).Ask)
			authed.POST("/chunks", chunkHandler.Ingest)
			authed.POST("/embeddings/generate", embeddingHandler.Generate)
			authed.POST("/seed", chunkHandler.Seed)

			// 清空知识库仅限管理员
			admin := authed.Group("/")
			admin.Use(middleware.AdminAuthMiddleware())
			{
				admin.DELETE("/chunks", chunkHandler.DeleteAll)
			}
		}
	}

	// 启动 HTTP 服务器并实现优雅停机
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	// Kafka 消费者是一个循环，会在程序退出时自然结束。
	log.Info("服务已优雅关闭")
}
