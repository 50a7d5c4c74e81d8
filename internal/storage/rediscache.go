// internal/storage/rediscache.go
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"knowyourcompany/internal/common/database"
	"knowyourcompany/internal/common/logger"
	"knowyourcompany/internal/models"
)

// cacheKeyPrefix namespaces insight entries inside the shared Redis DB.
const cacheKeyPrefix = "company:"

// RedisCache implements the insight cache contract on Redis. Entries
// are JSON-encoded insights under "company:"+canonicalKey with a TTL
// supplied by the orchestrator.
type RedisCache struct {
	client *database.RedisClient
	logger logger.Logger
}

func NewRedisCache(client *database.RedisClient, log logger.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		logger: log.WithFields(map[string]interface{}{"component": "rediscache"}),
	}
}

func cacheKey(canonicalKey string) string {
	return cacheKeyPrefix + canonicalKey
}

// Get returns (nil, nil) on a miss and an error only when Redis itself
// fails; a corrupt payload is treated as a miss after deleting it.
func (c *RedisCache) Get(ctx context.Context, canonicalKey string) (*models.Insight, error) {
	data, err := c.client.Get(ctx, cacheKey(canonicalKey))
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var ins models.Insight
	if err := json.Unmarshal([]byte(data), &ins); err != nil {
		c.logger.Warn("dropping corrupt cache entry", map[string]interface{}{
			"canonicalKey": canonicalKey,
			"error":        err.Error(),
		})
		_ = c.client.Del(ctx, cacheKey(canonicalKey))
		return nil, nil
	}
	return &ins, nil
}

func (c *RedisCache) Set(ctx context.Context, canonicalKey string, insight *models.Insight, ttl time.Duration) error {
	data, err := json.Marshal(insight)
	if err != nil {
		return fmt.Errorf("marshal insight: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(canonicalKey), data, ttl); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, canonicalKey string) error {
	if err := c.client.Del(ctx, cacheKey(canonicalKey)); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
