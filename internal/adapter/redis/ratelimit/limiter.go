// package ratelimit enforces the per-caller evaluation request budget in Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/codeclimb-2025.net/internal/config"
	"gitlab.com/codeclimb-2025.net/internal/core/ports/primary"
	"gitlab.com/codeclimb-2025.net/internal/core/ports/secondary"
)

const rateLimitKeyPrefix = "ratelimit:eval:"

var _ secondary.RateLimiter = (*Limiter)(nil)

// Limiter is a fixed-window counter: INCR per request, EXPIRE set when the
// window opens. The budget must be checked before any engine dispatch.
type Limiter struct {
	redisClient *redis.Client
	limit       int
	window      time.Duration
	logger      primary.Logger
}

// NewLimiter creates a new Redis rate limiter
func NewLimiter(redisClient *redis.Client, cfg *config.RateLimitConfig, logger primary.Logger) *Limiter {
	return &Limiter{
		redisClient: redisClient,
		limit:       cfg.Limit,
		window:      cfg.Window,
		logger:      logger,
	}
}

// Allow counts one request against the caller's window and reports whether it
// still fits the budget.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := fmt.Sprintf("%s%s", rateLimitKeyPrefix, key)

	count, err := l.redisClient.Incr(ctx, windowKey).Result()
	if err != nil {
		l.logger.Error("Failed to increment rate limit counter", "key", key, "error", err)
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if count == 1 {
		if err := l.redisClient.Expire(ctx, windowKey, l.window).Err(); err != nil {
			l.logger.Error("Failed to set rate limit window", "key", key, "error", err)
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	if count > int64(l.limit) {
		l.logger.Warn("Evaluation request budget exhausted", "key", key, "count", count)
		return false, nil
	}

	return true, nil
}
