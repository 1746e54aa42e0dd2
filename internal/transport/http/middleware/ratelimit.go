package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter hands out one token bucket per client IP. Deep searches are
// expensive, so engine and move routes sit behind it.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		limit:    rate.Limit(rps),
		burst:    burst,
		idleTTL:  10 * time.Minute,
	}
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cl, ok := rl.limiters[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[key] = cl
	}
	cl.lastSeen = now

	// forget clients that went quiet
	for k, other := range rl.limiters {
		if now.Sub(other.lastSeen) > rl.idleTTL {
			delete(rl.limiters, k)
		}
	}
	return cl.limiter
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiterFor(c.ClientIP()).Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
