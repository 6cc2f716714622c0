package casing

import (
	"container/list"
	"sync"
)

// defaultCapacity is the default maximum number of entries in the cache.
const defaultCapacity = 4096

// numShards is the number of independent cache shards.
// Must be a power of two for fast modulo via bitmask.
const numShards = 16

type cacheEntry struct {
	cp     rune
	mapped []uint16
}

// lruCache is an LRU cache mapping a code point to its full case mapping.
type lruCache struct {
	mu       sync.Mutex
	capacity int
	items    map[rune]*list.Element
	order    *list.List // front = most recently used
}

func newCache(capacity int) *lruCache {
	return &lruCache{
		capacity: capacity,
		items:    make(map[rune]*list.Element, capacity),
		order:    list.New(),
	}
}

func (c *lruCache) lookup(cp rune) ([]uint16, bool) {
	if c.capacity == 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.items[cp]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).mapped, true
}

func (c *lruCache) store(cp rune, mapped []uint16) {
	if c.capacity == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[cp]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*cacheEntry).mapped = mapped
		return
	}
	if c.order.Len() >= c.capacity {
		if back := c.order.Back(); back != nil {
			evicted := c.order.Remove(back).(*cacheEntry)
			delete(c.items, evicted.cp)
		}
	}
	c.items[cp] = c.order.PushFront(&cacheEntry{cp: cp, mapped: mapped})
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// shardedCache distributes entries across multiple lruCache shards
// to reduce mutex contention under concurrent access.
type shardedCache struct {
	shards [numShards]*lruCache
}

func newShardedCache(capacity int) *shardedCache {
	sc := &shardedCache{}
	perShard := capacity / numShards
	if perShard < 1 && capacity > 0 {
		perShard = 1
	}
	for i := range sc.shards {
		sc.shards[i] = newCache(perShard)
	}
	return sc
}

func (sc *shardedCache) shard(cp rune) *lruCache {
	return sc.shards[uint32(cp)&(numShards-1)]
}

func (sc *shardedCache) lookup(cp rune) ([]uint16, bool) {
	return sc.shard(cp).lookup(cp)
}

func (sc *shardedCache) store(cp rune, mapped []uint16) {
	sc.shard(cp).store(cp, mapped)
}

func (sc *shardedCache) len() int {
	total := 0
	for _, s := range sc.shards {
		total += s.len()
	}
	return total
}
