package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a fixed-window per-client limiter
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	size    time.Duration
}

type window struct {
	start time.Time
	count int
}

// NewRateLimiter creates a limiter allowing limit requests per window
func NewRateLimiter(limit int, size time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		size:    size,
	}
}

// Allow checks whether a request from the given client may proceed
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.windows[client]
	if !ok || now.Sub(w.start) >= rl.size {
		rl.windows[client] = &window{start: now, count: 1}
		rl.expire(now)
		return true
	}

	if w.count >= rl.limit {
		return false
	}
	w.count++
	return true
}

// expire drops stale windows; called with the lock held
func (rl *RateLimiter) expire(now time.Time) {
	for client, w := range rl.windows {
		if now.Sub(w.start) >= rl.size {
			delete(rl.windows, client)
		}
	}
}

// RateLimit middleware limits requests per client IP
func RateLimit(limit int, size time.Duration) gin.HandlerFunc {
	limiter := NewRateLimiter(limit, size)

	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
