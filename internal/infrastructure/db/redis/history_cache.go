package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ai-autopilot/gateway/internal/core/domain"
)

const cacheTTL = 5 * time.Minute

// HistoryCache stores each user's recent exchanges as a JSON blob.
// Key format: history:<user_id>
type HistoryCache struct {
	client *redis.Client
}

// NewHistoryCache creates a HistoryCache wrapping the given Redis client.
func NewHistoryCache(client *redis.Client) *HistoryCache {
	return &HistoryCache{client: client}
}

// Get returns the cached list, or (nil, nil) on a miss.
func (c *HistoryCache) Get(ctx context.Context, userID string) ([]domain.HistoryRecord, error) {
	raw, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("history cache get: %w", err)
	}

	var records []domain.HistoryRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		return nil, nil
	}
	return records, nil
}

// Set stores the list with cacheTTL. An empty slice is cached too, so users
// with no history do not hit Mongo on every poll.
func (c *HistoryCache) Set(ctx context.Context, userID string, records []domain.HistoryRecord) error {
	if records == nil {
		records = []domain.HistoryRecord{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("history cache marshal: %w", err)
	}
	return c.client.Set(ctx, c.key(userID), raw, cacheTTL).Err()
}

// Invalidate drops the cached list after a new record is written.
func (c *HistoryCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}

func (c *HistoryCache) key(userID string) string {
	return "history:" + userID
}
