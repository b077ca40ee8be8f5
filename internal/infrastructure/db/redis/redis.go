// Package redis wires the Redis client backing the dashboard metrics cache.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const connectTimeout = 5 * time.Second

// Config holds the Redis connection settings.
type Config struct {
	Addr string
	DB   int
	// Timeout bounds the startup ping. Zero means connectTimeout.
	Timeout time.Duration
}

// Connect opens a client and verifies the server answers before handing it
// out, so a misconfigured address fails at startup instead of on the first
// cache read.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}
