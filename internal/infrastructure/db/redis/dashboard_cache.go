package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/garmentworks/pattern-tracker/internal/core/ports"
)

const defaultMetricsTTL = time.Minute

// DashboardCache is a read-through cache for dashboard aggregates, keyed by
// window size. The short TTL keeps the dashboard cheap without making it
// noticeably stale.
type DashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDashboardCache creates a DashboardCache wrapping the given Redis client.
func NewDashboardCache(client *redis.Client, ttl time.Duration) *DashboardCache {
	if ttl <= 0 {
		ttl = defaultMetricsTTL
	}
	return &DashboardCache{client: client, ttl: ttl}
}

// Get returns the cached aggregate for the window, or (nil, nil) on a miss.
func (c *DashboardCache) Get(ctx context.Context, days int) (*ports.DashboardMetrics, error) {
	raw, err := c.client.Get(ctx, c.key(days)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("metrics cache get: %w", err)
	}

	var m ports.DashboardMetrics
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("metrics cache decode: %w", err)
	}
	return &m, nil
}

// Set stores the aggregate for the window (expires after the cache TTL).
func (c *DashboardCache) Set(ctx context.Context, days int, m *ports.DashboardMetrics) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("metrics cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(days), raw, c.ttl).Err()
}

func (c *DashboardCache) key(days int) string {
	return fmt.Sprintf("dashboard:metrics:%d", days)
}
