// Package cache memoizes collaborator answers (geocodes, DNS lookups) for
// the length of a run, with TTL and LRU eviction.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// entry is a cached item with its LRU handle.
type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
	element   *list.Element
}

// LRU is a fixed-capacity cache. Safe for concurrent use.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[K]*entry[K, V]
	order    *list.List // front = most recently used
	now      func() time.Time

	hits, misses int
}

// New creates a cache holding at most capacity items. A ttl of 0 means
// items never expire.
func New[K comparable, V any](capacity int, ttl time.Duration) *LRU[K, V] {
	if capacity <= 0 {
		capacity = 100
	}
	return &LRU[K, V]{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[K]*entry[K, V]),
		order:    list.New(),
		now:      time.Now,
	}
}

// Get returns the value for key and marks it as recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.get(key)
}

func (c *LRU[K, V]) get(key K) (V, bool) {
	var zero V
	e, ok := c.items[key]
	if !ok {
		c.misses++
		return zero, false
	}
	if c.expired(e) {
		c.remove(e)
		c.misses++
		return zero, false
	}
	c.order.MoveToFront(e.element)
	c.hits++
	return e.value, true
}

// Set stores value under key, evicting the least recently used item when
// the cache is full.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(key, value)
}

func (c *LRU[K, V]) set(key K, value V) {
	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = c.now().Add(c.ttl)
	}

	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.order.MoveToFront(e.element)
		return
	}
	if len(c.items) >= c.capacity {
		if back := c.order.Back(); back != nil {
			c.remove(back.Value.(*entry[K, V]))
		}
	}
	e := &entry[K, V]{key: key, value: value, expiresAt: expiresAt}
	e.element = c.order.PushFront(e)
	c.items[key] = e
}

// GetOrLoad returns the cached value or calls load and caches its result.
// Errors are not cached. The lock is not held while load runs, so two
// concurrent misses on the same key may both load.
func (c *LRU[K, V]) GetOrLoad(key K, load func() (V, error)) (V, error) {
	c.mu.Lock()
	v, ok := c.get(key)
	c.mu.Unlock()
	if ok {
		return v, nil
	}

	v, err := load()
	if err != nil {
		return v, err
	}
	c.Set(key, v)
	return v, nil
}

// Delete removes key.
func (c *LRU[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.items[key]; ok {
		c.remove(e)
	}
}

// Purge removes every item.
func (c *LRU[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]*entry[K, V])
	c.order.Init()
}

// Len returns the number of items, expired ones included until touched.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Capacity returns the maximum number of items.
func (c *LRU[K, V]) Capacity() int {
	return c.capacity
}

// Stats returns the hit and miss counters.
func (c *LRU[K, V]) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// CleanExpired removes expired items and returns how many were removed.
func (c *LRU[K, V]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for _, e := range c.items {
		if c.expired(e) {
			c.remove(e)
			removed++
		}
	}
	return removed
}

// Keys returns the live keys, most recently used first.
func (c *LRU[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]K, 0, len(c.items))
	for el := c.order.Front(); el != nil; el = el.Next() {
		e := el.Value.(*entry[K, V])
		if !c.expired(e) {
			keys = append(keys, e.key)
		}
	}
	return keys
}

// Must be called with c.mu held.
func (c *LRU[K, V]) expired(e *entry[K, V]) bool {
	return !e.expiresAt.IsZero() && c.now().After(e.expiresAt)
}

// Must be called with c.mu held.
func (c *LRU[K, V]) remove(e *entry[K, V]) {
	delete(c.items, e.key)
	c.order.Remove(e.element)
}
