package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter counts requests per key in fixed windows
type RateLimiter interface {
	// Allow records one request for key.
	// Returns: allowed bool, used int64, limit int64, error
	Allow(ctx context.Context, key string) (bool, int64, int64, error)

	// Close closes the Redis connection
	Close() error
}

type redisRateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// NewRateLimiter creates a Redis-backed limiter allowing limit requests per window
func NewRateLimiter(client *redis.Client, limit int64, window time.Duration, logger *slog.Logger) RateLimiter {
	return &redisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
		logger: logger,
	}
}

// windowKey generates the Redis key for the current window
// Format: rate:{key}:{window index}
func (r *redisRateLimiter) windowKey(key string) string {
	index := r.now().UTC().UnixNano() / int64(r.window)
	return fmt.Sprintf("rate:%s:%d", key, index)
}

func (r *redisRateLimiter) Allow(ctx context.Context, key string) (bool, int64, int64, error) {
	// If limit is 0 or negative, unlimited
	if r.limit <= 0 {
		return true, 0, 0, nil
	}

	windowKey := r.windowKey(key)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, r.window)

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("❌ [RateLimiter] Failed to increment counter", "error", err, "key", key)
		// On error, allow the request but log it
		return true, 0, r.limit, err
	}

	count := incr.Val()
	return count <= r.limit, count, r.limit, nil
}

func (r *redisRateLimiter) Close() error {
	return r.client.Close()
}

// NoOpRateLimiter is a rate limiter that always allows requests
// Used when Redis is not available
type NoOpRateLimiter struct {
	logger *slog.Logger
}

// NewNoOpRateLimiter creates a no-op rate limiter
func NewNoOpRateLimiter(logger *slog.Logger) RateLimiter {
	logger.Warn("⚠️ [RateLimiter] Using no-op rate limiter - rate limiting is disabled")
	return &NoOpRateLimiter{logger: logger}
}

func (r *NoOpRateLimiter) Allow(ctx context.Context, key string) (bool, int64, int64, error) {
	return true, 0, 0, nil
}

func (r *NoOpRateLimiter) Close() error {
	return nil
}

// RateLimit rejects requests with 429 once the client IP exceeds the limit for scope
func RateLimit(limiter RateLimiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, used, limit, err := limiter.Allow(c.Request.Context(), scope+":"+c.ClientIP())
		if err != nil {
			c.Next()
			return
		}

		if limit > 0 {
			remaining := limit - used
			if remaining < 0 {
				remaining = 0
			}
			c.Header("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
			c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, try again later"})
			return
		}

		c.Next()
	}
}
