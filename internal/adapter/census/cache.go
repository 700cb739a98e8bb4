package census

import (
	"context"
	"fmt"
	"sync"

	"github.com/couchcryptid/tornado-map/internal/domain"
	"github.com/couchcryptid/tornado-map/internal/observability"
)

// Fetcher is the boundary-fetching contract the cache decorates.
type Fetcher interface {
	FetchBoundaries(ctx context.Context, year int, level string) (domain.BoundarySet, error)
}

// CachedFetcher wraps a Fetcher with an in-memory LRU cache keyed by
// (year, level), so interactive re-renders within a session never refetch.
type CachedFetcher struct {
	inner   Fetcher
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedFetcher creates a cache decorator around a boundary fetcher.
func NewCachedFetcher(inner Fetcher, maxEntries int, metrics *observability.Metrics) *CachedFetcher {
	return &CachedFetcher{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedFetcher) FetchBoundaries(ctx context.Context, year int, level string) (domain.BoundarySet, error) {
	key := fmt.Sprintf("%d|%s", year, level)
	if set, ok := c.cache.get(key); ok {
		c.metrics.BoundaryCache.WithLabelValues("hit").Inc()
		return set, nil
	}
	c.metrics.BoundaryCache.WithLabelValues("miss").Inc()

	set, err := c.inner.FetchBoundaries(ctx, year, level)
	if err != nil {
		return set, err
	}
	// Only cache non-empty sets so a provider hiccup can be retried.
	if len(set.Boundaries) > 0 {
		c.cache.put(key, set)
	}
	return set, nil
}

// lruCache is a simple thread-safe LRU cache for boundary sets.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.BoundarySet
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.BoundarySet, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.BoundarySet{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.BoundarySet) {
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
