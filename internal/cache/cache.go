// Package cache stores extracted postings keyed by detail-page URL so that
// repeated runs skip pages rendered recently.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/job-discovery/internal/types"
)

// DefaultTTL bounds how long a cached posting is served
const DefaultTTL = 24 * time.Hour

const keyPrefix = "job-discovery:posting:"

// PostingCache looks up and stores postings by URL
type PostingCache interface {
	Get(ctx context.Context, url string) (*types.JobPosting, bool, error)
	Set(ctx context.Context, posting *types.JobPosting) error
}

// Key returns the cache key for a posting URL
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// RedisCache implements PostingCache on Redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient parses redisURL and verifies connectivity
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// Connect opens a RedisCache; ttl <= 0 uses DefaultTTL
func Connect(ctx context.Context, redisURL string, ttl time.Duration) (*RedisCache, error) {
	client, err := NewRedisClient(ctx, redisURL)
	if err != nil {
		return nil, err
	}
	return NewRedisCache(client, ttl), nil
}

// NewRedisCache wraps an existing client
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Get implements PostingCache. A miss is (nil, false, nil).
func (c *RedisCache) Get(ctx context.Context, url string) (*types.JobPosting, bool, error) {
	data, err := c.client.Get(ctx, Key(url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", url, err)
	}

	var posting types.JobPosting
	if err := json.Unmarshal(data, &posting); err != nil {
		// stale schema; treat as a miss
		return nil, false, nil
	}
	return &posting, true, nil
}

// Set implements PostingCache
func (c *RedisCache) Set(ctx context.Context, posting *types.JobPosting) error {
	data, err := json.Marshal(posting)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", posting.URL, err)
	}
	if err := c.client.Set(ctx, Key(posting.URL), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", posting.URL, err)
	}
	return nil
}

// Close releases the underlying client
func (c *RedisCache) Close() error {
	return c.client.Close()
}
