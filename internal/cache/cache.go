package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hstraker/deal-sourcing-saas-sub001/internal/config"
	"github.com/hstraker/deal-sourcing-saas-sub001/internal/logger"
	"github.com/hstraker/deal-sourcing-saas-sub001/internal/models"
)

// Cache is the 24-hour store for fetched comparable and rental data,
// keyed by postcode plus lookup filters. A cache hit costs zero credits;
// Redis TTL handles expiry.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// New connects to Redis and verifies connectivity.
func New(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Cache{rdb: rdb, ttl: cfg.CacheTTL, log: log}, nil
}

// Ping checks the Redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	return c.rdb.Close()
}

// Client exposes the underlying Redis client for collaborators that
// share the connection (the credit meter).
func (c *Cache) Client() *redis.Client {
	return c.rdb
}

// ComparablesKey builds the cache key for a sold-prices lookup.
func ComparablesKey(postcode string, bedrooms int, radiusMiles float64) string {
	return fmt.Sprintf("comps:%s:%d:%.1f", normalizePostcode(postcode), bedrooms, radiusMiles)
}

// RentalKey builds the cache key for a rental-estimate lookup.
func RentalKey(postcode string, bedrooms int, propertyType string) string {
	pt := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(propertyType), " ", "_"))
	return fmt.Sprintf("rent:%s:%d:%s", normalizePostcode(postcode), bedrooms, pt)
}

func normalizePostcode(postcode string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(postcode), " ", ""))
}

// GetComparables returns the cached comparable set for a key, with a
// hit/miss flag. Cache failures are reported as misses with the error
// attached; callers degrade to the metered fetch.
func (c *Cache) GetComparables(ctx context.Context, key string) ([]models.ComparableSale, bool, error) {
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache read failed for %s: %w", key, err)
	}

	var comps []models.ComparableSale
	if err := json.Unmarshal(payload, &comps); err != nil {
		return nil, false, fmt.Errorf("cache payload corrupt for %s: %w", key, err)
	}
	return comps, true, nil
}

// SetComparables stores a fetched comparable set under the lookup key.
func (c *Cache) SetComparables(ctx context.Context, key string, comps []models.ComparableSale) error {
	payload, err := json.Marshal(comps)
	if err != nil {
		return fmt.Errorf("failed to encode comparables for %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache write failed for %s: %w", key, err)
	}
	return nil
}

// GetRental returns the cached rental estimate for a key, with a
// hit/miss flag.
func (c *Cache) GetRental(ctx context.Context, key string) (*models.RentalEstimate, bool, error) {
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache read failed for %s: %w", key, err)
	}

	var est models.RentalEstimate
	if err := json.Unmarshal(payload, &est); err != nil {
		return nil, false, fmt.Errorf("cache payload corrupt for %s: %w", key, err)
	}
	return &est, true, nil
}

// SetRental stores a fetched rental estimate under the lookup key.
func (c *Cache) SetRental(ctx context.Context, key string, est *models.RentalEstimate) error {
	payload, err := json.Marshal(est)
	if err != nil {
		return fmt.Errorf("failed to encode rental estimate for %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache write failed for %s: %w", key, err)
	}
	return nil
}
