package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myphoto-inc/myphoto/internal/infrastructure/ratelimit"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
	"github.com/myphoto-inc/myphoto/internal/shared/utils"
)

// RateLimit limits requests per client IP and route. A nil limiter disables
// limiting. Limiter failures let the request through.
func RateLimit(limiter ratelimit.RateLimiter, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := c.FullPath() + ":" + c.ClientIP()
		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Warnw("rate limiter unavailable", "key", key, "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
