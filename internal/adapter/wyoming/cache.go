package wyoming

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/couchcryptid/wxplot/internal/observability"
	"github.com/couchcryptid/wxplot/internal/sounding"
)

// CachedProvider wraps a sounding.Provider with an in-memory LRU cache so
// re-plotting the same station and time does not refetch.
type CachedProvider struct {
	inner   sounding.Provider
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedProvider creates a cache decorator around a provider.
func NewCachedProvider(inner sounding.Provider, maxEntries int, metrics *observability.Metrics) *CachedProvider {
	return &CachedProvider{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedProvider) Fetch(ctx context.Context, station string, t time.Time) (sounding.Profile, error) {
	key := fmt.Sprintf("%s|%s", station, t.UTC().Format(time.RFC3339))
	if profile, ok := c.cache.get(key); ok {
		c.metrics.SoundingCache.WithLabelValues("hit").Inc()
		return profile, nil
	}
	c.metrics.SoundingCache.WithLabelValues("miss").Inc()

	profile, err := c.inner.Fetch(ctx, station, t)
	if err != nil {
		c.metrics.SoundingRequests.WithLabelValues("error").Inc()
		return profile, err
	}
	// Only cache populated profiles so a transient empty response can be
	// retried.
	if len(profile.Levels) == 0 {
		c.metrics.SoundingRequests.WithLabelValues("empty").Inc()
		return profile, nil
	}
	c.metrics.SoundingRequests.WithLabelValues("success").Inc()
	c.cache.put(key, profile)
	return profile, nil
}

// lruCache is a simple thread-safe LRU cache for sounding profiles.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value sounding.Profile
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (sounding.Profile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return sounding.Profile{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value sounding.Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
