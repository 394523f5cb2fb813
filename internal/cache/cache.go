// Package cache provides a small TTL cache with size-bounded eviction,
// used to avoid re-requesting advice for an unchanged snapshot.
package cache

import (
	"sync"
	"time"
)

type Cache[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]entry[T]
}

type entry[T any] struct {
	data      T
	storedAt  time.Time
	expiresAt time.Time
}

// New creates a cache holding at most maxSize entries, each valid for ttl.
func New[T any](maxSize int, ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]entry[T]),
	}
}

// Get retrieves a value. Expired entries read as missing and are dropped.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	e, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.items, key)
		return zero, false
	}
	return e.data, true
}

// Set stores a value. When the cache is full the oldest entry makes room.
func (c *Cache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxSize {
		c.evictOldestLocked()
	}
	c.items[key] = entry[T]{data: data, storedAt: now, expiresAt: now.Add(c.ttl)}
}

// Delete removes a key from the cache
func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Size returns the current number of items in the cache
func (c *Cache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// CleanExpired removes all expired entries and returns how many were dropped.
func (c *Cache[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, e := range c.items {
		if now.After(e.expiresAt) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

func (c *Cache[T]) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	first := true
	for key, e := range c.items {
		if first || e.storedAt.Before(oldestAt) {
			oldestKey, oldestAt = key, e.storedAt
			first = false
		}
	}
	if !first {
		delete(c.items, oldestKey)
	}
}
