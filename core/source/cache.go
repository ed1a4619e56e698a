package source

import (
	"context"
	"sync"
	"time"

	"tablediff/core/table"

	"golang.org/x/sync/singleflight"
)

// cachedTable is one loaded table with its load time.
type cachedTable struct {
	table *table.Table
	built time.Time
}

// Cache wraps a Source and keeps loaded tables for a fixed time-to-live.
// Concurrent loads of the same location share one underlying read.
type Cache struct {
	src Source
	ttl time.Duration
	now func() time.Time

	mu     sync.RWMutex
	tables map[string]cachedTable
	sf     singleflight.Group
}

// NewCache wraps src. A zero ttl disables caching.
func NewCache(src Source, ttl time.Duration) *Cache {
	return &Cache{
		src:    src,
		ttl:    ttl,
		now:    time.Now,
		tables: make(map[string]cachedTable),
	}
}

func (c *Cache) expired(e cachedTable) bool {
	if c.ttl == 0 {
		return true // No caching
	}
	return c.now().Sub(e.built) > c.ttl
}

// Load implements Source.
// Callers must treat the returned table as read-only; it is shared.
func (c *Cache) Load(ctx context.Context, location string) (*table.Table, error) {
	// Fast path
	c.mu.RLock()
	entry, exists := c.tables[location]
	c.mu.RUnlock()

	if exists && !c.expired(entry) {
		return entry.table, nil
	}

	result, err, _ := c.sf.Do(location, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		c.mu.RLock()
		entry, exists := c.tables[location]
		c.mu.RUnlock()

		if exists && !c.expired(entry) {
			return entry.table, nil
		}

		t, err := c.src.Load(ctx, location)
		if err != nil {
			return nil, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			c.tables[location] = cachedTable{table: t, built: c.now()}
			c.mu.Unlock()
		}
		return t, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*table.Table), nil
}

// Invalidate drops the cached table for location.
func (c *Cache) Invalidate(location string) {
	c.mu.Lock()
	delete(c.tables, location)
	c.mu.Unlock()
}

// Len returns the number of cached tables, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tables)
}
