package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/LaBanHSPO/premium-bio-website/internal/models"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "profile:"

// DefaultCacheTTL bounds how long a cached document may outlive the
// relational rows it was assembled from.
const DefaultCacheTTL = time.Hour

// DocumentCache is the read-through cache consulted by the profile
// repository. Implemented by ConfigCache; tests may substitute fakes.
type DocumentCache interface {
	Get(ctx context.Context, username string) (*models.BioData, error)
	Set(ctx context.Context, username string, doc *models.BioData, ttl time.Duration) error
	Invalidate(ctx context.Context, username string) error
}

// ConfigCache stores assembled profile documents in redis under
// "profile:<username>" with TTL expiry.
type ConfigCache struct {
	rdb    *redis.Client
	logger *slog.Logger
}

func NewConfigCache(rdb *redis.Client, logger *slog.Logger) *ConfigCache {
	return &ConfigCache{rdb: rdb, logger: logger}
}

func (c *ConfigCache) key(username string) string {
	return cacheKeyPrefix + username
}

// Get returns the cached document, or nil when absent or expired.
func (c *ConfigCache) Get(ctx context.Context, username string) (*models.BioData, error) {
	val, err := c.rdb.Get(ctx, c.key(username)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache entry: %w", err)
	}

	var doc models.BioData
	if err := json.Unmarshal([]byte(val), &doc); err != nil {
		return nil, fmt.Errorf("decoding cache entry: %w", err)
	}
	return &doc, nil
}

// Set overwrites any prior entry for the username.
func (c *ConfigCache) Set(ctx context.Context, username string, doc *models.BioData, ttl time.Duration) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	if err := c.rdb.Set(ctx, c.key(username), data, ttl).Err(); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Invalidate deletes the entry so the next read is guaranteed a miss.
// Called synchronously as the last step of every successful write.
func (c *ConfigCache) Invalidate(ctx context.Context, username string) error {
	if err := c.rdb.Del(ctx, c.key(username)).Err(); err != nil {
		return fmt.Errorf("deleting cache entry: %w", err)
	}
	return nil
}

// InvalidateAll deletes nothing; entries decay by TTL only. Kept so
// callers flushing the whole cache learn the limitation from one place.
func (c *ConfigCache) InvalidateAll() {
	c.logger.Warn("bulk cache invalidation not supported, entries decay by TTL")
}
