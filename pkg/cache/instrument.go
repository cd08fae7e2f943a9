package cache

import (
	"context"
	"strings"
	"time"

	"github.com/anchorplan/anchorplan/pkg/observability"
)

// Instrument wraps a cache so every operation reports to the registered
// observability hooks. The reported key type is the segment before the
// first ':' of the key, i.e. "rooms" or "placement" for keys from the
// default keyer.
func Instrument(c Cache) Cache {
	return &instrumentedCache{inner: c}
}

type instrumentedCache struct {
	inner Cache
}

func keyType(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "other"
}

func (c *instrumentedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.inner.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, hit, err
}

func (c *instrumentedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.inner.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	}
	return err
}

func (c *instrumentedCache) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

func (c *instrumentedCache) Close() error {
	return c.inner.Close()
}
