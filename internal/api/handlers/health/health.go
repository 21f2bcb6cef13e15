package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"allergen-guard/internal/core/queue"
	"allergen-guard/internal/core/ratelimit"
	"allergen-guard/internal/infrastructure/config"
	"allergen-guard/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// readyTimeout 就緒檢查對外部依賴的等待上限
const readyTimeout = 2 * time.Second

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Queue     *queue.Status          `json:"queue,omitempty"`
	RateLimit *RateLimitStatus       `json:"rate_limit,omitempty"`
}

// RateLimitStatus 限流狀態
type RateLimitStatus struct {
	Enabled bool   `json:"enabled"`
	Backend string `json:"backend"`
}

// Handler 健康檢查處理器
type Handler struct {
	cfg     *config.Config
	queue   *queue.Manager
	limiter ratelimit.Limiter
}

// NewHandler 創建健康檢查處理器，queue 與 limiter 可為 nil
func NewHandler(cfg *config.Config, queueManager *queue.Manager, limiter ratelimit.Limiter) *Handler {
	return &Handler{
		cfg:     cfg,
		queue:   queueManager,
		limiter: limiter,
	}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.cfg.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}
	if h.queue != nil {
		response.Queue = h.queue.Status()
	}
	if h.limiter != nil {
		response.RateLimit = &RateLimitStatus{
			Enabled: h.cfg.RateLimit.Enabled,
			Backend: h.limiter.Backend(),
		}
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查，限流後端無法連線時返回 503
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.limiter != nil && h.cfg.RateLimit.Enabled {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()

		if err := h.limiter.Ping(ctx); err != nil {
			common.LogWarn("Readiness check failed",
				zap.String("backend", h.limiter.Backend()),
				zap.Error(err),
			)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "not_ready",
				"backend": h.limiter.Backend(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
