package ratelimit

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// Limiter is a Redis fixed-window counter for the unauthenticated
// auth endpoints. Without a Redis URL it is a no-op, and any Redis
// failure fails open: losing rate limiting must never take down
// login.
type Limiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func New(redisURL string, limit int64, window time.Duration) *Limiter {
	l := &Limiter{limit: limit, window: window}

	if redisURL == "" {
		return l
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("ratelimit: invalid REDIS_URL, limiter disabled: %v", err)
		return l
	}

	l.client = redis.NewClient(opt)
	return l
}

func (l *Limiter) Allow(c *gin.Context, key string) bool {
	if l.client == nil {
		return true
	}

	ctx := c.Request.Context()

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return true
	}
	if count == 1 {
		l.client.Expire(ctx, key, l.window)
	}

	return count <= l.limit
}

func (l *Limiter) Middleware(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", scope, c.ClientIP())

		if !l.Allow(c, key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"ok":    false,
				"error": "too_many_requests",
			})
			return
		}

		c.Next()
	}
}
