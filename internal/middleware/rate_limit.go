package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"gaming-community-api/internal/config"
	"gaming-community-api/internal/metrics"
	"gaming-community-api/internal/response"
)

// RateLimit enforces a fixed-window per-client request limit backed by redis.
// When redis is unreachable the limiter fails open.
func RateLimit(redisClient *redis.Client, cfg config.ThrottleConfig, logger *zap.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s", c.ClientIP())

		count, err := redisClient.Incr(c.Request.Context(), key).Result()
		if err != nil {
			logger.Warn("rate limiter unavailable, allowing request", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			if err := redisClient.Expire(c.Request.Context(), key, cfg.Window).Err(); err != nil {
				logger.Warn("failed to set rate limit window", zap.Error(err))
			}
		}

		if count > int64(cfg.Limit) {
			if m != nil {
				m.RateLimitRejectedTotal.Inc()
			}
			response.SendError(c, http.StatusTooManyRequests,
				response.ErrCodeRateLimited, "Too many requests, slow down")
			return
		}
		c.Next()
	}
}
