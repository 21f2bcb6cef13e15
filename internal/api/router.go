package api

import (
	"time"

	allergenHandler "allergen-guard/internal/api/handlers/allergen"
	"allergen-guard/internal/api/handlers/health"
	"allergen-guard/internal/api/middleware"
	"allergen-guard/internal/core/queue"
	"allergen-guard/internal/core/ratelimit"
	"allergen-guard/internal/core/screening"
	"allergen-guard/internal/infrastructure/config"
	"allergen-guard/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter 設置路由
// limiter 與 queueManager 可為 nil，分別代表不限流與批次同步執行
func SetupRouter(cfg *config.Config, svc *screening.Service, limiter ratelimit.Limiter, queueManager *queue.Manager) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	router.Use(middleware.RequestTimeout(cfg.Server.RequestTimeout))

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg, queueManager, limiter)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled && limiter != nil {
		api.Use(middleware.RateLimit(limiter, cfg.RateLimit.Window))
	}
	api.Use(middleware.Deduplication(cfg))
	{
		h := allergenHandler.NewHandler(svc, cfg.App.Debug)

		allergens := api.Group("/allergens")
		{
			allergens.POST("/check", h.HandleCheck)
			allergens.POST("/check/batch", h.HandleCheckBatch)
			allergens.POST("/alert", h.HandleAlert)
			allergens.GET("/aliases", h.HandleKnownAllergens)
			allergens.GET("/aliases/:name", h.HandleAliases)
			allergens.GET("/severity/:level", h.HandleSeverity)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled && limiter != nil),
		zap.Int("queue_workers", cfg.Queue.Workers),
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router
}
