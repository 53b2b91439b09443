package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/myphoto-inc/myphoto/internal/shared/config"
)

// NewRedisClient connects to the configured Redis server and pings it.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.GetAddr(), err)
	}
	return client, nil
}

// NewChallengeStore returns a Redis-backed store when client is set and an
// in-memory one otherwise.
func NewChallengeStore(client *redis.Client, ttl time.Duration) ChallengeStore {
	if client == nil {
		return NewMemoryChallengeStore(ttl)
	}
	return NewRedisChallengeStore(client, ttl)
}
