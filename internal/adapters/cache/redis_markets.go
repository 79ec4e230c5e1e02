package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andrescamacho/colonial-go/internal/application/common"
	"github.com/andrescamacho/colonial-go/internal/domain/market"
	"github.com/andrescamacho/colonial-go/internal/infrastructure/logging"
)

// MarketSearchCache wraps a market.Searcher with a Redis read-through cache.
// Reads check Redis first then fall back to the primary; results are stored
// with a TTL. Redis failures degrade to the primary and are only logged.
type MarketSearchCache struct {
	primary market.Searcher
	rdb     *redis.Client
	ttl     time.Duration
	prefix  string
}

// NewMarketSearchCache creates a cached wrapper around a searcher.
func NewMarketSearchCache(primary market.Searcher, rdb *redis.Client, ttl time.Duration, prefix string) *MarketSearchCache {
	if prefix == "" {
		prefix = "colonial:markets:"
	}
	return &MarketSearchCache{
		primary: primary,
		rdb:     rdb,
		ttl:     ttl,
		prefix:  prefix,
	}
}

// NewRedisClient parses a redis:// URL and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

// SearchMarkets implements market.Searcher.
func (c *MarketSearchCache) SearchMarkets(ctx context.Context, buildID string, criteria market.Criteria) (*market.FoundMarkets, error) {
	logger := common.LoggerFromContext(ctx)
	key := c.key(buildID, criteria)

	// Try cache.
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var found market.FoundMarkets
		if json.Unmarshal(data, &found) == nil && found.ValidFor(buildID) {
			logger.Debug("market search cache hit", logging.String("key", key))
			return &found, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		logger.Warn("market search cache unavailable", logging.Err(err))
	}

	// Cache miss.
	found, err := c.primary.SearchMarkets(ctx, buildID, criteria)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(found); err == nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			logger.Warn("failed to cache market search", logging.Err(err))
		}
	}
	return found, nil
}

// Invalidate drops every cached search of a build.
func (c *MarketSearchCache) Invalidate(ctx context.Context, buildID string) error {
	iter := c.rdb.Scan(ctx, 0, c.prefix+buildID+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cached searches: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *MarketSearchCache) key(buildID string, criteria market.Criteria) string {
	return c.prefix + buildID + ":" + criteria.Key()
}
