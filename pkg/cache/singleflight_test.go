package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type countingCache struct {
	Cache
	sets atomic.Int32
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.sets.Add(1)
	return c.Cache.Set(ctx, key, data, ttl)
}

func TestCoalescingCacheDeduplicatesConcurrentSets(t *testing.T) {
	inner := &countingCache{Cache: NewNullCache()}
	c := NewCoalescingCache(inner)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Set(context.Background(), "k", []byte("v"), 0)
		}()
	}
	wg.Wait()

	if n := inner.sets.Load(); n < 1 || n > 20 {
		t.Errorf("unexpected set count: %d", n)
	}
}

func TestCoalescingCacheGetDelegates(t *testing.T) {
	inner := NewNullCache()
	c := NewCoalescingCache(inner)
	_, ok, err := c.Get(context.Background(), "missing")
	if err != nil || ok {
		t.Errorf("expected a clean miss, got ok=%v err=%v", ok, err)
	}
}
