package middleware

import (
	"fmt"
	"net/http"
	"time"

	"inkboard/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware counts requests per path and client in fixed windows.
// If Redis is unreachable the request is let through.
func RateLimitMiddleware(redisClient *redis.Client, limit int, window time.Duration, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, exists := c.Get("user_id")
		if !exists {
			clientID = c.ClientIP()
		}

		key := fmt.Sprintf("rate_limit:%s:%v", c.FullPath(), clientID)

		ctx := c.Request.Context()
		count, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			log.Warn("[RATE LIMIT] check failed for %s, letting request through: %v", key, err)
			c.Next()
			return
		}

		if count == 1 {
			redisClient.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}

		c.Next()
	}
}
