package technology

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// unlockedCache keeps each user's unlocked technology ids. Entries are dropped
// after every committed unlock, so a miss always reloads from storage.
type unlockedCache struct {
	lru *expirable.LRU[string, map[int]struct{}]
}

func newUnlockedCache(size int, ttl time.Duration) *unlockedCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &unlockedCache{lru: expirable.NewLRU[string, map[int]struct{}](size, nil, ttl)}
}

func (c *unlockedCache) Get(userID string) (map[int]struct{}, bool) {
	return c.lru.Get(userID)
}

func (c *unlockedCache) Set(userID string, set map[int]struct{}) {
	c.lru.Add(userID, set)
}

func (c *unlockedCache) Invalidate(userID string) {
	c.lru.Remove(userID)
}

func (c *unlockedCache) Len() int {
	return c.lru.Len()
}

func toSet(ids []int) map[int]struct{} {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
