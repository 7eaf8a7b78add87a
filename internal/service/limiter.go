package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Login throttle errors.
var (
	ErrLoginRateLimited   = errors.New("login rate limited")
	ErrLimiterUnavailable = errors.New("login limiter unavailable")
)

// LoginLimiter throttles login attempts per username.
type LoginLimiter interface {
	Enforce(ctx context.Context, username string) error
}

type redisLoginLimiter struct {
	redis       *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter creates a redis-backed login limiter. A username may
// attempt at most maxAttempts logins per window.
func NewLoginLimiter(redisClient *redis.Client, maxAttempts int, window time.Duration) LoginLimiter {
	return &redisLoginLimiter{
		redis:       redisClient,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

func (l *redisLoginLimiter) Enforce(ctx context.Context, username string) error {
	key := loginAttemptKey(username)

	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLimiterUnavailable, err)
	}

	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrLimiterUnavailable, err)
		}
	}

	if count > int64(l.maxAttempts) {
		return ErrLoginRateLimited
	}

	return nil
}

func loginAttemptKey(username string) string {
	return "login_attempts:" + username
}
