// Package ratelimit counts requests per key in Redis.
package ratelimit

import (
	"context"
	"time"
)

// RateLimiter decides whether another request for key fits in the window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

type Config struct {
	Limit  int
	Window time.Duration
}
