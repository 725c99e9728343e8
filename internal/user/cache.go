package user

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CacheConfig sizes the platform lookup cache
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// CacheStats reports cache effectiveness
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// cachedIDEntry wraps a resolved user id with version metadata for cache invalidation
type cachedIDEntry struct {
	Version  string
	UserID   string
	CachedAt time.Time
}

// idCache maps (platform, platform_id) to user ids. Only the identity mapping
// is cached; balances are always read fresh.
type idCache struct {
	lru    *expirable.LRU[string, *cachedIDEntry]
	hits   atomic.Int64
	misses atomic.Int64
}

func newIDCache(cfg CacheConfig) *idCache {
	size := cfg.Size
	if size <= 0 {
		size = DefaultCacheSize
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &idCache{lru: expirable.NewLRU[string, *cachedIDEntry](size, nil, ttl)}
}

func cacheKey(platform, platformID string) string {
	return platform + ":" + platformID
}

// Get returns the cached id. Entries with a stale schema version are dropped.
func (c *idCache) Get(platform, platformID string) (string, bool) {
	key := cacheKey(platform, platformID)
	entry, found := c.lru.Get(key)
	if !found {
		c.misses.Add(1)
		return "", false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		c.misses.Add(1)
		return "", false
	}
	c.hits.Add(1)
	return entry.UserID, true
}

func (c *idCache) Set(platform, platformID, userID string) {
	c.lru.Add(cacheKey(platform, platformID), &cachedIDEntry{
		Version:  CacheSchemaVersion,
		UserID:   userID,
		CachedAt: time.Now(),
	})
}

func (c *idCache) Invalidate(platform, platformID string) {
	c.lru.Remove(cacheKey(platform, platformID))
}

func (c *idCache) Stats() CacheStats {
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load(), Size: c.lru.Len()}
}
