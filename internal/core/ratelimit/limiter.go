package ratelimit

import (
	"context"
	"fmt"
	"time"

	"allergen-guard/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// Limiter 限流器介面
type Limiter interface {
	// Allow 檢查指定 key 是否允許請求
	Allow(ctx context.Context, key string) (bool, error)
	// Backend 限流後端名稱
	Backend() string
	// Ping 檢查後端是否可用
	Ping(ctx context.Context) error
	Close() error
}

// New 依設定建立限流器
func New(cfg *config.Config) (Limiter, error) {
	switch cfg.RateLimit.Backend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		// 測試連接
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		return NewRedisLimiter(client, cfg.Redis.KeyPrefix, cfg.RateLimit.Requests, cfg.RateLimit.Window), nil
	case config.BackendMemory, "":
		return NewMemoryLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window), nil
	default:
		return nil, fmt.Errorf("unknown rate limit backend %q", cfg.RateLimit.Backend)
	}
}
