package utils

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const pageCachePrefix = "cache:page:"

// CachedPage is one stored rendering of a response body.
type CachedPage struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type memoryPage struct {
	page      CachedPage
	expiresAt time.Time
}

// PageCache holds rendered responses keyed by request path+query for a
// fixed TTL. Entries are never invalidated by writes; they age out or are
// removed by an explicit Clear. Redis backs the cache when available,
// otherwise a mutex-guarded in-memory map serves single-instance setups.
type PageCache struct {
	ttl time.Duration
	rc  *redis.Client

	mu      sync.Mutex
	entries map[string]memoryPage
}

// NewPageCache builds a Redis-backed cache. Pass a nil client for the
// in-memory fallback.
func NewPageCache(ttl time.Duration, rc *redis.Client) *PageCache {
	return &PageCache{
		ttl:     ttl,
		rc:      rc,
		entries: map[string]memoryPage{},
	}
}

// Get returns the cached rendering for a key when present and unexpired.
func (c *PageCache) Get(key string) (CachedPage, bool) {
	if c.rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		b, err := c.rc.Get(ctx, pageCachePrefix+key).Bytes()
		if err != nil {
			if Sugar != nil {
				Sugar.Debugf("page cache miss key=%s err=%v", key, err)
			}
			return CachedPage{}, false
		}
		var page CachedPage
		if err := json.Unmarshal(b, &page); err != nil {
			return CachedPage{}, false
		}
		return page, true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return CachedPage{}, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return CachedPage{}, false
	}
	return entry.page, true
}

// Set stores a rendering under the key for the cache TTL.
func (c *PageCache) Set(key string, page CachedPage) {
	if c.rc != nil {
		b, err := json.Marshal(page)
		if err != nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := c.rc.Set(ctx, pageCachePrefix+key, b, c.ttl).Err(); err != nil && Sugar != nil {
			Sugar.Warnf("page cache set failed key=%s err=%v", key, err)
		}
		return
	}

	c.mu.Lock()
	c.entries[key] = memoryPage{page: page, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Clear drops every cached page. Administrative and test escape hatch;
// end users never reach it.
func (c *PageCache) Clear() {
	if c.rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		var cursor uint64
		for i := 0; i < 10; i++ {
			keys, cur, err := c.rc.Scan(ctx, cursor, pageCachePrefix+"*", 1000).Result()
			if err != nil {
				break
			}
			cursor = cur
			if len(keys) > 0 {
				pipe := c.rc.Pipeline()
				for _, k := range keys {
					pipe.Del(ctx, k)
				}
				_, _ = pipe.Exec(ctx)
			}
			if cursor == 0 {
				break
			}
		}
		return
	}

	c.mu.Lock()
	c.entries = map[string]memoryPage{}
	c.mu.Unlock()
}
