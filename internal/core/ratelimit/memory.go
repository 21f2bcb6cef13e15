package ratelimit

import (
	"context"
	"sync"
	"time"
)

// bucket 令牌桶
type bucket struct {
	tokens   float64
	lastTime time.Time
}

// MemoryLimiter 行程內的令牌桶限流器，每個 key 一個桶
type MemoryLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	capacity float64
	rate     float64 // 每秒補充的令牌數
	window   time.Duration
	now      func() time.Time
}

// NewMemoryLimiter 創建新的限流器
func NewMemoryLimiter(requests int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		buckets:  make(map[string]*bucket),
		capacity: float64(requests),
		rate:     float64(requests) / window.Seconds(),
		window:   window,
		now:      time.Now,
	}
}

// Allow 檢查是否允許請求
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity, lastTime: now}
		l.buckets[key] = b
	}

	// 添加新令牌
	elapsed := now.Sub(b.lastTime).Seconds()
	b.lastTime = now
	b.tokens = min(l.capacity, b.tokens+elapsed*l.rate)

	if b.tokens >= 1 {
		b.tokens--
		return true, nil
	}
	return false, nil
}

// Prune 移除已補滿且閒置超過一個視窗的桶
func (l *MemoryLimiter) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key, b := range l.buckets {
		if now.Sub(b.lastTime) > l.window {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

// Backend 限流後端名稱
func (l *MemoryLimiter) Backend() string {
	return "memory"
}

// Ping 行程內限流器永遠可用
func (l *MemoryLimiter) Ping(context.Context) error {
	return nil
}

// Close 清空所有桶
func (l *MemoryLimiter) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buckets = make(map[string]*bucket)
	return nil
}

// RunPruner 定期清理閒置的桶，直到 ctx 結束
func (l *MemoryLimiter) RunPruner(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Prune()
		}
	}
}
