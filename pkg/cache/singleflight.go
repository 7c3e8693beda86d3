package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// CoalescingCache wraps a Cache so that concurrent Get calls for the same
// key that all miss trigger only one underlying fetch would have to
// trigger - but since Cache.Get never computes a value itself (the caller
// does, on a miss), coalescing applies to Set: concurrent Set calls racing
// to populate the same key collapse into one write, which matters for a
// service-mode deployment where many goroutines render the same
// (graph hash, options) pair at once after a cold start.
type CoalescingCache struct {
	inner Cache
	group singleflight.Group
}

// NewCoalescingCache wraps inner with single-flight deduplication on Set.
func NewCoalescingCache(inner Cache) Cache {
	return &CoalescingCache{inner: inner}
}

// Get delegates directly; reads never race on shared mutable state.
func (c *CoalescingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.inner.Get(ctx, key)
}

// Set coalesces concurrent writes to the same key into one underlying
// call, so a burst of requests that all just computed the same layout
// don't all pay the backend's write cost.
func (c *CoalescingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	_, err, _ := c.group.Do(key, func() (any, error) {
		return nil, c.inner.Set(ctx, key, data, ttl)
	})
	return err
}

// Delete delegates directly.
func (c *CoalescingCache) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

// Close delegates directly.
func (c *CoalescingCache) Close() error {
	return c.inner.Close()
}

var _ Cache = (*CoalescingCache)(nil)
