package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"microblog/internal/models"
	"microblog/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy defines the behavior when the rate limit store (Redis) is unavailable.
type FailPolicy int

const (
	// FailOpen allows the request to proceed if Redis is unavailable.
	FailOpen FailPolicy = iota
	// FailClosed blocks the request (503 Service Unavailable) if Redis is unavailable.
	FailClosed
)

// RateLimiter counts requests per caller in fixed Redis windows.
type RateLimiter struct {
	rdb    *redis.Client
	env    string
	policy FailPolicy
	off    bool
}

// NewRateLimiter builds a limiter. A development/test/stress environment
// disables limiting; a nil client is handled by the fail policy.
func NewRateLimiter(rdb *redis.Client, env string, policy FailPolicy) *RateLimiter {
	if env == "" {
		env = "development"
	}
	return &RateLimiter{rdb: rdb, env: env, policy: policy}
}

// NewNoopRateLimiter returns a limiter that allows every request.
func NewNoopRateLimiter() *RateLimiter {
	return &RateLimiter{off: true}
}

func (l *RateLimiter) enabled() bool {
	if l.off {
		return false
	}
	switch l.env {
	case "test", "development", "stress":
		return false
	}
	return true
}

// Allow checks if a resource has exceeded its rate limit.
// Returns true if allowed, false if limit exceeded.
func (l *RateLimiter) Allow(ctx context.Context, resource, id string, limit int, window time.Duration) (bool, error) {
	if !l.enabled() {
		return true, nil
	}
	if l.rdb == nil {
		return false, fmt.Errorf("redis client is nil")
	}

	key := fmt.Sprintf("rl:%s:%s", resource, id)

	cnt, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if cnt == 1 {
		if err := l.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return cnt <= int64(limit), nil
}

// Limit returns a Fiber middleware enforcing `limit` requests per `window` for the named resource.
// It keys by authenticated userID (if set in c.Locals("userID")) otherwise by remote IP.
func (l *RateLimiter) Limit(resource string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limit <= 0 {
			return c.Next()
		}

		var id string
		if uid, ok := c.Locals("userID").(uint); ok {
			id = fmt.Sprintf("user:%d", uid)
		} else {
			id = fmt.Sprintf("ip:%s", c.IP())
		}

		allowed, err := l.Allow(c.UserContext(), resource, id, limit, window)
		if err != nil {
			if l.policy == FailClosed {
				Logger.WarnContext(c.UserContext(), "rate limit store unavailable, rejecting",
					slog.String("resource", resource), slog.String("error", err.Error()))
				return models.RespondWithError(c, fiber.StatusServiceUnavailable,
					&models.AppError{Code: models.CodeInternal, Message: "rate limit unavailable"})
			}
			return c.Next()
		}

		if !allowed {
			observability.RateLimitRejections.WithLabelValues(resource).Inc()
			return models.RespondWithError(c, fiber.StatusTooManyRequests,
				&models.AppError{Code: models.CodeRateLimited, Message: "rate limit exceeded"})
		}
		return c.Next()
	}
}
