package middleware

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	apperrors "tour-booking/internal/errors"
	"tour-booking/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig configures RateLimit.
type RateLimitConfig struct {
	Counter ratelimit.Counter
	Max     int64
	Window  time.Duration
	// Prefix limits only paths starting with it. Empty limits everything.
	Prefix string
}

// RateLimit allows Max requests per client IP per Window. Counter failures
// let the request through.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.Request.URL.Path, cfg.Prefix) {
			c.Next()
			return
		}

		count, resetAt, err := cfg.Counter.Increment(c.Request.Context(), c.ClientIP(), cfg.Window)
		if err != nil {
			slog.Warn("rate limit counter unavailable", "error", err)
			c.Next()
			return
		}

		remaining := cfg.Max - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.FormatInt(cfg.Max, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if count > cfg.Max {
			retryAfter := int64(math.Ceil(time.Until(resetAt).Seconds()))
			if retryAfter < 0 {
				retryAfter = 0
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			abortWithError(c, apperrors.ErrTooManyRequests)
			return
		}

		c.Next()
	}
}
