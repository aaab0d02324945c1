// Package lru provides a least-recently-used cache bounded by the total byte
// size of its values rather than by entry count. Misses are filled through a
// pluggable Loader.
package lru

import (
	"container/list"
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"
)

// ErrNotFound is returned by a Loader that has no value for a key. The cache
// passes it through to the caller without caching anything.
var ErrNotFound = errors.New("not found")

// ErrInsufficientSpace is returned when a loaded value is larger than the
// whole cache.
var ErrInsufficientSpace = errors.New("insufficient cache space")

// ErrInvalidCapacity is returned for a capacity that is not positive.
var ErrInvalidCapacity = errors.New("capacity must be greater than 0")

// ErrNoLoader is returned on a miss when no Loader is configured.
var ErrNoLoader = errors.New("no loader configured")

// Sizer is implemented by cacheable values.
type Sizer interface {
	SizeBytes() int64
}

// Loader produces the value for a key on a cache miss.
type Loader[K comparable, V Sizer] interface {
	Load(ctx context.Context, key K) (V, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc[K comparable, V Sizer] func(ctx context.Context, key K) (V, error)

// Load calls f(ctx, key).
func (f LoaderFunc[K, V]) Load(ctx context.Context, key K) (V, error) {
	return f(ctx, key)
}

// Stats counts cache activity since construction.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
}

type entry[K comparable, V Sizer] struct {
	key   K
	value V
	size  int64
}

// Cache is a byte-bounded LRU cache. It is safe for concurrent use; a miss
// holds the cache lock while the loader runs.
type Cache[K comparable, V Sizer] struct {
	mu       sync.Mutex
	capacity int64
	size     int64
	loader   Loader[K, V]
	order    *list.List // front is most recently used
	items    map[K]*list.Element
	stats    Stats
}

// New creates a cache holding at most capacity bytes of values.
func New[K comparable, V Sizer](capacity int64, loader Loader[K, V]) (*Cache[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("lru: %w: %d", ErrInvalidCapacity, capacity)
	}
	return &Cache[K, V]{
		capacity: capacity,
		loader:   loader,
		order:    list.New(),
		items:    make(map[K]*list.Element),
	}, nil
}

// Get returns the cached value for key, loading and caching it on a miss.
// Least recently used entries are evicted until the new value fits.
func (c *Cache[K, V]) Get(ctx context.Context, key K) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		c.stats.Hits++
		return el.Value.(*entry[K, V]).value, nil
	}
	c.stats.Misses++
	if c.loader == nil {
		return zero, fmt.Errorf("lru: get %v: %w", key, ErrNoLoader)
	}

	v, err := c.loader.Load(ctx, key)
	if err != nil {
		return zero, fmt.Errorf("lru: load %v: %w", key, err)
	}
	size := v.SizeBytes()
	if size > c.capacity {
		return zero, fmt.Errorf("lru: %v needs %d bytes of %d: %w", key, size, c.capacity, ErrInsufficientSpace)
	}
	c.evictTo(c.capacity - size)
	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: v, size: size})
	c.size += size
	return v, nil
}

// Peek returns the cached value for key without loading or touching recency.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		return el.Value.(*entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Invalidate drops key from the cache and reports whether it was cached.
func (c *Cache[K, V]) Invalidate(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		return false
	}
	c.drop(el)
	return true
}

// SetCapacity changes the byte bound, evicting entries that no longer fit.
func (c *Cache[K, V]) SetCapacity(capacity int64) error {
	if capacity <= 0 {
		return fmt.Errorf("lru: %w: %d", ErrInvalidCapacity, capacity)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.capacity = capacity
	c.evictTo(capacity)
	return nil
}

// Capacity returns the byte bound.
func (c *Cache[K, V]) Capacity() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capacity
}

// Size returns the total byte size of cached values.
func (c *Cache[K, V]) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// SetLoader replaces the loader used on misses.
func (c *Cache[K, V]) SetLoader(loader Loader[K, V]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loader = loader
}

// Stats returns a snapshot of the activity counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// All iterates a snapshot of the cached entries from least to most recently
// used.
func (c *Cache[K, V]) All() iter.Seq2[K, V] {
	c.mu.Lock()
	snapshot := make([]*entry[K, V], 0, len(c.items))
	for el := c.order.Back(); el != nil; el = el.Prev() {
		snapshot = append(snapshot, el.Value.(*entry[K, V]))
	}
	c.mu.Unlock()

	return func(yield func(K, V) bool) {
		for _, e := range snapshot {
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

// evictTo drops least recently used entries until size is at most limit.
func (c *Cache[K, V]) evictTo(limit int64) {
	for c.size > limit {
		c.drop(c.order.Back())
		c.stats.Evictions++
	}
}

func (c *Cache[K, V]) drop(el *list.Element) {
	e := c.order.Remove(el).(*entry[K, V])
	delete(c.items, e.key)
	c.size -= e.size
}
