package middleware

import (
	"github.com/ductham08/shorten-links/internal/config"
	"github.com/ductham08/shorten-links/pkg/response"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit applies a process-wide token bucket to the routes it wraps.
// Intended for the creation endpoint; the redirect path stays unthrottled.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			response.TooManyRequests(c, "Too many requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
