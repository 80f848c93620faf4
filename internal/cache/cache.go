package cache

import (
	"context"
	"time"
)

// IndexWriter records index rows for freshly written cache entries.
type IndexWriter interface {
	InsertCacheRow(ctx context.Context, key string, createdAt int64) error
}

// Cache pairs the KV payload store with its relational index on the
// gateway's write path.
type Cache struct {
	kv    KV
	index IndexWriter
}

// NewCache creates a Cache.
func NewCache(kv KV, index IndexWriter) *Cache {
	return &Cache{kv: kv, index: index}
}

// Put stores a payload expiring at expiresAt and records its index row.
// The payload is written first: a crash between the two writes leaves an
// unindexed payload, which the KV store's own expiry cleans up; it never
// leaves an index row pointing at nothing.
func (c *Cache) Put(ctx context.Context, key, value string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl < 0 {
		ttl = 0
	}
	if err := c.kv.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	return c.index.InsertCacheRow(ctx, key, time.Now().UnixMilli())
}

// PutUntilLocalMidnight stores a payload expiring at the next local midnight
// for the given timezone offset (minutes east of UTC).
func (c *Cache) PutUntilLocalMidnight(ctx context.Context, key, value string, tzOffsetMinutes int) error {
	expiresAt := time.Unix(NextLocalMidnight(time.Now(), tzOffsetMinutes), 0)
	return c.Put(ctx, key, value, expiresAt)
}

// Get returns a cached payload. An index row whose payload is gone reads as
// a plain miss; the next sweep removes the orphaned row.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	return c.kv.Get(ctx, key)
}
