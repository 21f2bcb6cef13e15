package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"allergen-guard/internal/api"
	"allergen-guard/internal/core/queue"
	"allergen-guard/internal/core/ratelimit"
	"allergen-guard/internal/core/screening"
	"allergen-guard/internal/infrastructure/config"
	"allergen-guard/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel, cfg.LogMode, cfg.LogDir); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("env", cfg.App.Env),
		zap.String("rate_limit_backend", cfg.RateLimit.Backend),
		zap.Int("queue_workers", cfg.Queue.Workers),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 初始化限流器，Redis 無法連線時退回記憶體後端
	limiter, err := ratelimit.New(cfg)
	if err != nil {
		common.LogWarn("Rate limiter backend unavailable, falling back to memory",
			zap.String("backend", cfg.RateLimit.Backend),
			zap.Error(err),
		)
		limiter = ratelimit.NewMemoryLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}
	defer limiter.Close()

	if mem, ok := limiter.(*ratelimit.MemoryLimiter); ok && cfg.RateLimit.Enabled {
		go mem.RunPruner(ctx, cfg.RateLimit.Window)
	}

	// 初始化批次工作池與檢查服務
	queueManager := queue.NewManager(cfg)
	defer queueManager.Close()

	svc := screening.NewService(cfg, queueManager)

	router := api.SetupRouter(cfg, svc, limiter, queueManager)

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Int("port", cfg.Server.Port),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	common.LogInfo("Server exited")
}
