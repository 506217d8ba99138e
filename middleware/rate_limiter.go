package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/jtompuri/writing-contest-web-app-sub000/metrics"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a per-client token bucket. Tokens refill at rate per minute
// up to the burst capacity.
type RateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	rate     int
	burst    int
	interval time.Duration
}

type visitor struct {
	tokens      int
	lastUpdated time.Time
}

// NewRateLimiter creates a rate limiter allowing rate requests per minute
// with the given burst capacity per client IP.
func NewRateLimiter(rate, burst int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		burst:    burst,
		interval: time.Minute,
	}
}

// Allow reports whether the client may make another request and consumes a
// token when it may.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{tokens: rl.burst, lastUpdated: time.Now()}
		rl.visitors[ip] = v
	}

	now := time.Now()
	refill := int(now.Sub(v.lastUpdated)/rl.interval) * rl.rate
	if refill > 0 {
		v.tokens += refill
		if v.tokens > rl.burst {
			v.tokens = rl.burst
		}
		v.lastUpdated = now
	}

	if v.tokens > 0 {
		v.tokens--
		return true
	}
	return false
}

// RateLimiterMiddleware rejects clients that exceed their token budget
func RateLimiterMiddleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.Allow(ip) {
			metrics.RateLimiterRejections.WithLabelValues(ip).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
