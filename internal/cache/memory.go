package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/elementa/internal/model"
)

// DefaultTTL bounds how long an answer is reused within one process
const DefaultTTL = time.Hour

// MemoryCache keeps result sets in memory with expiry
type MemoryCache struct {
	items *gocache.Cache
}

// NewMemoryCache creates a memory cache. ttl <= 0 uses DefaultTTL.
// Expired entries are never returned; they are dropped on the next Set of the same key.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{
		items: gocache.New(ttl, 0),
	}
}

// Get returns a copy of the result cached for mode
func (c *MemoryCache) Get(mode model.Mode) (model.ResultSet, bool) {
	if mode == nil {
		return model.ResultSet{}, false
	}
	val, found := c.items.Get(Key(mode))
	if !found {
		return model.ResultSet{}, false
	}
	rs, ok := val.(model.ResultSet)
	if !ok {
		return model.ResultSet{}, false
	}
	return rs.Clone(), true
}

// Set stores a copy of rs for mode
func (c *MemoryCache) Set(mode model.Mode, rs model.ResultSet) {
	if mode == nil {
		return
	}
	c.items.SetDefault(Key(mode), rs.Clone())
}

// Len returns the number of cached results, including expired ones not yet replaced
func (c *MemoryCache) Len() int {
	return c.items.ItemCount()
}
