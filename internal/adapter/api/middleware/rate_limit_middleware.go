package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"complainhub/internal/infrastructure/ratelimit"
	"complainhub/pkg/logger"
)

// Per-user write limits. Submissions and comments are throttled separately
// so a busy comment thread does not lock a student out of filing.
var (
	submitLimiter  = ratelimit.NewRateLimiter(5, 5, time.Minute)
	commentLimiter = ratelimit.NewRateLimiter(20, 20, time.Minute)
	authLimiter    = ratelimit.NewRateLimiter(10, 10, time.Minute)
)

func init() {
	go func() {
		for {
			time.Sleep(time.Hour)
			submitLimiter.Cleanup(2 * time.Hour)
			commentLimiter.Cleanup(2 * time.Hour)
			authLimiter.Cleanup(2 * time.Hour)
		}
	}()
}

func rateLimit(limiter *ratelimit.RateLimiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key, ok := c.Get("uid").(string)
			if !ok || key == "" {
				key = c.RealIP()
			}

			if !limiter.Allow(key, action) {
				logger.Warn("Rate limit hit: %s on %s", key, action)
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error": "Too many requests. Please slow down.",
				})
			}
			return next(c)
		}
	}
}

func SubmitRateLimit() echo.MiddlewareFunc {
	return rateLimit(submitLimiter, "complaint_create")
}

func CommentRateLimit() echo.MiddlewareFunc {
	return rateLimit(commentLimiter, "comment_add")
}

func AuthRateLimit() echo.MiddlewareFunc {
	return rateLimit(authLimiter, "auth")
}
