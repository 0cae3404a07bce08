package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eventify/business/matching"
	"eventify/domain"

	"github.com/redis/go-redis/v9"
)

// MatchCache keeps ranked match results for a short TTL, keyed by the
// canonical category set. The catalog changes slowly enough that a stale
// ranking within the TTL is acceptable.
type MatchCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ matching.MatchCache = (*MatchCache)(nil)

func NewMatchCache(client *redis.Client, ttl time.Duration) *MatchCache {
	return &MatchCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *MatchCache) Get(ctx context.Context, key string) ([]domain.ContractorMatch, bool, error) {
	val, err := c.client.Get(ctx, cacheKey(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read match cache: %w", err)
	}

	var matches []domain.ContractorMatch
	if err := json.Unmarshal([]byte(val), &matches); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached matches: %w", err)
	}

	return matches, true, nil
}

func (c *MatchCache) Set(ctx context.Context, key string, matches []domain.ContractorMatch) error {
	raw, err := json.Marshal(matches)
	if err != nil {
		return fmt.Errorf("failed to marshal matches: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write match cache: %w", err)
	}

	return nil
}

func cacheKey(key string) string {
	return fmt.Sprintf("match:categories:%s", key)
}
