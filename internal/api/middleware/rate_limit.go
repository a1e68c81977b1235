package middleware

import (
	"fmt"
	"sync"
	"time"

	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 超過這個數量才清理已補滿的 bucket
const bucketPruneThreshold = 4096

// RateLimiter 每個用戶端各自一個 token bucket
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	capacity float64
	rate     float64 // 每秒補充的 token 數
	now      func() time.Time
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewRateLimiter 創建新的限流器，window 內最多 requests 個請求
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		capacity: float64(requests),
		rate:     float64(requests) / window.Seconds(),
		now:      time.Now,
	}
}

// Allow 檢查 key 是否還有可用 token
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		if len(rl.buckets) >= bucketPruneThreshold {
			rl.prune(now)
		}
		b = &bucket{tokens: rl.capacity, last: now}
		rl.buckets[key] = b
	}

	// 依經過時間補充 token
	b.tokens = min(rl.capacity, b.tokens+now.Sub(b.last).Seconds()*rl.rate)
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// prune 移除已經補滿的 bucket，呼叫端需持有鎖
func (rl *RateLimiter) prune(now time.Time) {
	for key, b := range rl.buckets {
		if b.tokens+now.Sub(b.last).Seconds()*rl.rate >= rl.capacity {
			delete(rl.buckets, key)
		}
	}
}

// RateLimit 限流中間件，以用戶端 IP 區分
func RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	limiter := NewRateLimiter(requests, window)

	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			common.LogInfo("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)

			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			common.AbortWithError(c, common.ErrTooManyRequests)
			return
		}

		c.Next()
	}
}
