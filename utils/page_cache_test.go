package utils

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPageCacheMemoryBackend(t *testing.T) {
	cache := NewPageCache(time.Minute, nil)

	page := CachedPage{ContentType: "application/json", Body: []byte(`{"ok":true}`)}
	cache.Set("/?page=1", page)

	t.Run("hit returns the stored rendering", func(t *testing.T) {
		got, ok := cache.Get("/?page=1")
		assert.True(t, ok)
		assert.Equal(t, page, got)
	})

	t.Run("distinct keys are distinct entries", func(t *testing.T) {
		_, ok := cache.Get("/?page=2")
		assert.False(t, ok)
	})

	t.Run("clear empties the cache", func(t *testing.T) {
		cache.Clear()
		_, ok := cache.Get("/?page=1")
		assert.False(t, ok)
	})
}

func TestPageCacheExpiry(t *testing.T) {
	cache := NewPageCache(30*time.Millisecond, nil)
	cache.Set("/", CachedPage{Body: []byte("stale")})

	_, ok := cache.Get("/")
	assert.True(t, ok)

	time.Sleep(60 * time.Millisecond)
	_, ok = cache.Get("/")
	assert.False(t, ok, "entry should age out after the TTL")
}

func TestPageCacheConcurrentAccess(t *testing.T) {
	cache := NewPageCache(time.Minute, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("/?page=%d", n%4)
			for j := 0; j < 100; j++ {
				cache.Set(key, CachedPage{Body: []byte(key)})
				if got, ok := cache.Get(key); ok {
					assert.Equal(t, []byte(key), got.Body)
				}
				if j%50 == 0 {
					cache.Clear()
				}
			}
		}(i)
	}
	wg.Wait()
}
