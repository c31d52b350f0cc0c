package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T, ttl time.Duration) (*PostCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewPostCache(client, ttl), mr
}

func TestPostCache_MissThenHit(t *testing.T) {
	c, _ := setupCache(t, 300*time.Second)
	ctx := context.Background()

	_, ok := c.Get(ctx, 1)
	assert.False(t, ok)

	posts := []PostSnapshot{{ID: 1, Text: "hello", OwnerID: 1}}
	c.Put(ctx, 1, posts)

	got, ok := c.Get(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, posts, got)

	hits, misses := c.Counters()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestPostCache_TTLExpiry(t *testing.T) {
	c, mr := setupCache(t, 300*time.Second)
	ctx := context.Background()

	c.Put(ctx, 1, []PostSnapshot{{ID: 1, Text: "hello", OwnerID: 1}})
	_, ok := c.Get(ctx, 1)
	require.True(t, ok)

	mr.FastForward(301 * time.Second)
	_, ok = c.Get(ctx, 1)
	assert.False(t, ok)
}

func TestPostCache_EmptyListIsCacheable(t *testing.T) {
	// 空列表也是合法快照，命中后不再打到存储层
	c, _ := setupCache(t, 300*time.Second)
	ctx := context.Background()

	c.Put(ctx, 1, []PostSnapshot{})
	got, ok := c.Get(ctx, 1)
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestPostCache_OverwriteLastWriteWins(t *testing.T) {
	c, _ := setupCache(t, 300*time.Second)
	ctx := context.Background()

	c.Put(ctx, 1, []PostSnapshot{{ID: 1, Text: "old", OwnerID: 1}})
	c.Put(ctx, 1, []PostSnapshot{{ID: 2, Text: "new", OwnerID: 1}})

	got, ok := c.Get(ctx, 1)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Text)
}

func TestPostCache_Invalidate(t *testing.T) {
	c, _ := setupCache(t, 300*time.Second)
	ctx := context.Background()

	c.Put(ctx, 1, []PostSnapshot{{ID: 1, Text: "hello", OwnerID: 1}})
	c.Put(ctx, 2, []PostSnapshot{{ID: 2, Text: "other", OwnerID: 2}})

	c.Invalidate(ctx, 1)

	_, ok := c.Get(ctx, 1)
	assert.False(t, ok)
	// 其他 owner 的 key 不受影响
	_, ok = c.Get(ctx, 2)
	assert.True(t, ok)
}

func TestPostCache_UndecodableEntryIsMiss(t *testing.T) {
	c, mr := setupCache(t, 300*time.Second)
	require.NoError(t, mr.Set("posts:1", "not json"))

	_, ok := c.Get(context.Background(), 1)
	assert.False(t, ok)
}

func TestPostCache_RedisDownIsMiss(t *testing.T) {
	c, mr := setupCache(t, 300*time.Second)
	mr.Close()

	_, ok := c.Get(context.Background(), 1)
	assert.False(t, ok)
}
