package main

import (
	"log"
	"net/http"
	"time"

	config "retailx-assistant/configs"
	"retailx-assistant/pkg/dataset"
	"retailx-assistant/pkg/handlers"
	"retailx-assistant/pkg/services"
	"retailx-assistant/pkg/session"
	"retailx-assistant/pkg/supportlog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .envファイルを読み込み
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// 設定の読み込み
	cfg := config.LoadConfig()

	// データセットは起動時に1回だけ読み込む（失敗は致命的）
	tables, err := dataset.Load(cfg.DataDir)
	if err != nil {
		log.Fatalf("FATAL: failed to load dataset from %s: %v", cfg.DataDir, err)
	}

	// サービスの初期化
	monitoringService := services.NewMonitoringService()
	sink := supportlog.NewCSVSink(cfg.SupportLogPath)
	queryService := services.NewQueryService(tables, sink)
	dialogService := services.NewDialogService(queryService)

	// Redisが設定されている場合のみサーバー側セッションミラーを有効化
	var sessionStore session.Store
	if cfg.RedisAddr != "" {
		ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
		redisStore, err := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, ttl)
		if err != nil {
			log.Fatalf("FATAL: failed to connect to Redis at %s: %v", cfg.RedisAddr, err)
		}
		defer redisStore.Close()
		sessionStore = redisStore
		log.Printf("✅ session mirror enabled (redis: %s)", cfg.RedisAddr)
	}

	// ハンドラーの初期化
	chatHandler := handlers.NewChatHandler(dialogService, monitoringService, sessionStore)
	adminHandler := handlers.NewAdminHandler(tables, monitoringService)
	monitoringHandler := handlers.NewMonitoringHandler(monitoringService)

	// Ginルーターの初期化
	r := gin.Default()
	r.LoadHTMLGlob("templates/*.html")

	// ミドルウェアの登録
	r.Use(monitoringService.LoggingMiddleware()) // ロギングミドルウェアをグローバルに適用
	r.Use(cors.Default())

	// 認証ミドルウェア
	authMiddleware := func(apiKey string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if apiKey == "" {
				c.Next()
				return
			}
			providedKey := c.GetHeader("X-API-KEY")
			if providedKey != apiKey {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			c.Next()
		}
	}

	// チャットUIと会話エンドポイント
	r.GET("/", chatHandler.Index)
	r.POST("/chat", chatHandler.Chat)

	// ヘルスチェックエンドポイント
	r.GET("/health", handlers.HealthCheck)

	// APIバージョン1のルートグループ
	v1 := r.Group("/api/v1")
	v1.Use(authMiddleware(cfg.APIKey))
	{
		// 管理者向けAPI
		admin := v1.Group("/admin")
		{
			admin.GET("/health-status", adminHandler.GetHealthStatus)
			admin.POST("/maintenance/start", adminHandler.StartMaintenance)
			admin.POST("/maintenance/stop", adminHandler.StopMaintenance)
		}

		// モニタリングAPI
		monitoring := v1.Group("/monitoring")
		{
			monitoring.GET("/logs", monitoringHandler.GetLogs)
		}
	}

	log.Printf("Starting RetailX Assistant server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
