package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/slidearcade/puzzle-api/internal/core/ports"
)

const snapshotTTL = 5 * time.Second

// LeaderboardCache holds short-lived leaderboard page snapshots.
// Key format: leaderboard:<page>:<limit>. The small TTL keeps pages close to
// the ledger while absorbing refresh bursts; staleness within the TTL is
// acceptable.
type LeaderboardCache struct {
	client *redis.Client
}

// NewLeaderboardCache creates a LeaderboardCache wrapping the given Redis client.
func NewLeaderboardCache(client *redis.Client) *LeaderboardCache {
	return &LeaderboardCache{client: client}
}

// Get returns the cached page, or (nil, nil) on a miss.
func (c *LeaderboardCache) Get(ctx context.Context, page, limit int) (*ports.LeaderboardResult, error) {
	payload, err := c.client.Get(ctx, c.key(page, limit)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("leaderboard cache get: %w", err)
	}

	var result ports.LeaderboardResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("leaderboard cache decode: %w", err)
	}
	return &result, nil
}

// Set stores the page snapshot (expires after snapshotTTL).
func (c *LeaderboardCache) Set(ctx context.Context, page, limit int, result *ports.LeaderboardResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("leaderboard cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(page, limit), payload, snapshotTTL).Err()
}

func (c *LeaderboardCache) key(page, limit int) string {
	return fmt.Sprintf("leaderboard:%d:%d", page, limit)
}
