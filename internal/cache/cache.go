// Package cache is a small TTL key/value cache with prefix invalidation.
package cache

import (
	"strings"
	"sync"
	"time"
)

type item struct {
	value      any
	expiration int64
}

type Cache struct {
	items map[string]item
	mu    sync.RWMutex
	ttl   time.Duration
	done  chan struct{}
	once  sync.Once
}

// New starts a cache whose entries live for ttl unless Set is given another
// duration. Expired entries are swept every cleanup interval; Close stops
// the sweeper.
func New(ttl, cleanup time.Duration) *Cache {
	c := &Cache{
		items: make(map[string]item),
		ttl:   ttl,
		done:  make(chan struct{}),
	}
	if cleanup > 0 {
		go c.cleanupExpired(cleanup)
	}
	return c
}

func (c *Cache) Set(key string, value any, ttl ...time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	duration := c.ttl
	if len(ttl) > 0 {
		duration = ttl[0]
	}
	c.items[key] = item{value: value, expiration: time.Now().Add(duration).UnixNano()}
}

func (c *Cache) GetValue(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, found := c.items[key]
	if !found || time.Now().UnixNano() > it.expiration {
		return nil, false
	}
	return it.value, true
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *Cache) DeleteByPrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
}

func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *Cache) cleanupExpired(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *Cache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixNano()
	for key, it := range c.items {
		if now > it.expiration {
			delete(c.items, key)
		}
	}
}
