package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "myphoto:ratelimit:"

// RedisRateLimiter is a sliding-window limiter backed by one sorted set per
// key. Every attempt is recorded, including rejected ones.
type RedisRateLimiter struct {
	client *redis.Client
	config Config
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client, config Config) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		config: config,
		now:    time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (l *RedisRateLimiter) WithClock(now func() time.Time) *RedisRateLimiter {
	l.now = now
	return l
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.config.Limit <= 0 || l.config.Window <= 0 {
		return true, nil
	}

	now := l.now()
	redisKey := keyPrefix + key
	windowStart := now.Add(-l.config.Window).UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	zcard := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()})
	pipe.Expire(ctx, redisKey, l.config.Window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	return zcard.Val() < int64(l.config.Limit), nil
}

func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit for %s: %w", key, err)
	}
	return nil
}
