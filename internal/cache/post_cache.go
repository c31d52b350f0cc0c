package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/minipost/pkg/logger"
)

// PostSnapshot is the cached projection of a post, exactly what the list
// endpoint returns.
type PostSnapshot struct {
	ID      uint64 `json:"id"`
	Text    string `json:"text"`
	OwnerID uint64 `json:"owner_id"`
}

// PostCache holds a short-TTL snapshot of a user's post list in Redis.
// One key per owner; overwrite is last-write-wins. A transport error on read
// degrades to a miss so the store can still serve the request.
type PostCache struct {
	client *redis.Client
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

func NewPostCache(client *redis.Client, ttl time.Duration) *PostCache {
	return &PostCache{client: client, ttl: ttl}
}

func key(ownerID uint64) string { return fmt.Sprintf("posts:%d", ownerID) }

// Get returns the cached snapshot and ok=true on a hit. Absence, expiry and
// undecodable payloads are all misses, not errors.
func (c *PostCache) Get(ctx context.Context, ownerID uint64) ([]PostSnapshot, bool) {
	data, err := c.client.Get(ctx, key(ownerID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("post cache read failed", zap.Uint64("owner_id", ownerID), zap.Error(err))
		}
		c.misses.Add(1)
		return nil, false
	}
	var out []PostSnapshot
	if uErr := json.Unmarshal(data, &out); uErr != nil {
		logger.Warn("post cache entry undecodable", zap.Uint64("owner_id", ownerID), zap.Error(uErr))
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return out, true
}

// Put stores the snapshot under the owner key with the configured TTL.
// Failures are logged, not surfaced: the caller already has the data.
func (c *PostCache) Put(ctx context.Context, ownerID uint64, posts []PostSnapshot) {
	payload, err := json.Marshal(posts)
	if err != nil {
		logger.Warn("post cache marshal failed", zap.Uint64("owner_id", ownerID), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key(ownerID), payload, c.ttl).Err(); err != nil {
		logger.Warn("post cache write failed", zap.Uint64("owner_id", ownerID), zap.Error(err))
	}
}

// Invalidate drops the owner's snapshot. Used by mutation paths when the
// write policy is invalidate-on-write.
func (c *PostCache) Invalidate(ctx context.Context, ownerID uint64) {
	if err := c.client.Del(ctx, key(ownerID)).Err(); err != nil {
		logger.Warn("post cache invalidate failed", zap.Uint64("owner_id", ownerID), zap.Error(err))
	}
}

// Counters reports hit/miss totals since the last reset (used by cachebench).
func (c *PostCache) Counters() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// ResetCounters clears recorded hit/miss counters.
func (c *PostCache) ResetCounters() {
	c.hits.Store(0)
	c.misses.Store(0)
}
