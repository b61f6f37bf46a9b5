package cache

import (
	"context"
	"time"

	"github.com/matzehuels/gooeyswipe/pkg/observability"
)

// Instrumented reports hits, misses and writes of a Cache to cache hooks.
type Instrumented struct {
	Cache
	hooks observability.CacheHooks
}

// Instrument wraps c. A nil hooks uses the registered cache hooks.
func Instrument(c Cache, hooks observability.CacheHooks) *Instrumented {
	if hooks == nil {
		hooks = observability.Cache()
	}
	return &Instrumented{Cache: c, hooks: hooks}
}

// Get retrieves a value and reports a hit or a miss. Errors report neither.
func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.Cache.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if ok {
		c.hooks.OnCacheHit(ctx, KeyType(key))
	} else {
		c.hooks.OnCacheMiss(ctx, KeyType(key))
	}
	return data, ok, nil
}

// Set stores a value and reports its size.
func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	c.hooks.OnCacheSet(ctx, KeyType(key), len(data))
	return nil
}
