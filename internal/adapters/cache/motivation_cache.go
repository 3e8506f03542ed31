package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultMotivationTTL = 24 * time.Hour

// MotivationCache stores generated messages under motivation:{key}.
// Errors are logged and reported as misses.
type MotivationCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewMotivationCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *MotivationCache {
	if ttl <= 0 {
		ttl = DefaultMotivationTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MotivationCache{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.Named("motivation_cache"),
	}
}

func (c *MotivationCache) key(k string) string {
	return "motivation:" + k
}

func (c *MotivationCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.rdb.Get(ctx, c.key(key)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("redis read error", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return val, true
}

func (c *MotivationCache) Set(ctx context.Context, key, message string) {
	if err := c.rdb.Set(ctx, c.key(key), message, c.ttl).Err(); err != nil {
		c.logger.Warn("redis set error", zap.String("key", key), zap.Error(err))
	}
}
