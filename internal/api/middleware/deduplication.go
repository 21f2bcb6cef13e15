package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"allergen-guard/internal/infrastructure/config"
	"allergen-guard/internal/pkg/common"
)

const (
	defaultDedupWindow = 1 * time.Second
	dedupPruneInterval = 10 * time.Minute
)

// requestCache 請求指紋與最後出現時間
type requestCache struct {
	sync.Mutex
	requests  map[string]time.Time
	window    time.Duration
	lastPrune time.Time
	now       func() time.Time
}

func newRequestCache(window time.Duration) *requestCache {
	return &requestCache{
		requests:  make(map[string]time.Time),
		window:    window,
		lastPrune: time.Now(),
		now:       time.Now,
	}
}

// seen 記錄指紋，視窗內重複出現時返回 true
func (rc *requestCache) seen(fingerprint string) bool {
	rc.Lock()
	defer rc.Unlock()

	now := rc.now()
	if now.Sub(rc.lastPrune) > dedupPruneInterval {
		for k, t := range rc.requests {
			if now.Sub(t) > 10*rc.window {
				delete(rc.requests, k)
			}
		}
		rc.lastPrune = now
	}

	if lastTime, exists := rc.requests[fingerprint]; exists && now.Sub(lastTime) <= rc.window {
		return true
	}
	rc.requests[fingerprint] = now
	return false
}

// Deduplication 請求去重中間件，同一用戶端在視窗內重送相同 POST 內容時拒絕
func Deduplication(cfg *config.Config) gin.HandlerFunc {
	window := defaultDedupWindow
	if cfg != nil && cfg.DedupWindow > 0 {
		window = cfg.DedupWindow
	}
	cache := newRequestCache(window)

	return func(c *gin.Context) {
		// 只處理 POST 請求
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		// 計算請求體哈希
		bodyHash := ""
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				common.LogWarn("Request body too large",
					zap.Int64("max_size", maxBytesErr.Limit),
					zap.String("client_ip", c.ClientIP()),
					zap.String("path", c.Request.URL.Path),
				)
				status, resp := common.ToErrorResponse(common.ErrTooLarge, false)
				c.AbortWithStatusJSON(status, resp)
				return
			}
			if err != nil {
				// 交由後續處理器回報讀取錯誤
				common.LogWarn("Failed to read request body", zap.Error(err))
				c.Request.Body = io.NopCloser(bytes.NewReader(body))
				c.Next()
				return
			}
			bodyHash = common.HashString(string(body))
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		// 生成請求指紋
		fingerprint := c.ClientIP() + ":" + c.Request.URL.Path
		if bodyHash != "" {
			fingerprint += ":" + bodyHash
		}

		if cache.seen(fingerprint) {
			common.LogInfo("Duplicate request rejected",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			status, resp := common.ToErrorResponse(common.ErrTooManyRequests, false)
			c.AbortWithStatusJSON(status, resp)
			return
		}

		c.Next()
	}
}
