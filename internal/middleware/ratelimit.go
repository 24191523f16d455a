package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit returns per-API-key token bucket limiting. Each key gets its own
// bucket refilling at rps tokens per second up to burst; an empty bucket
// means 429. Requests without a key in the context (auth did not run) are
// let through.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	limiters := &keyedLimiters{
		rps:      rate.Limit(rps),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}

	return func(c *gin.Context) {
		apiKey := c.GetString(ContextKeyAPIKey)
		if apiKey == "" {
			c.Next()
			return
		}

		if !limiters.get(apiKey).Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}

type keyedLimiters struct {
	mu       sync.Mutex
	rps      rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

func (k *keyedLimiters) get(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	l, ok := k.limiters[key]
	if !ok {
		l = rate.NewLimiter(k.rps, k.burst)
		k.limiters[key] = l
	}
	return l
}
