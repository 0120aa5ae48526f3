package xtier

import (
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// localEntry 本地层条目。storedAt 仅在启用软过期时参与判断。
type localEntry struct {
	value    []byte
	storedAt time.Time
}

// localCache 进程内 LRU 层。
//
// 底层并发安全由 hashicorp/golang-lru 保证；统计用原子计数，
// 淘汰数取 Add 的返回值——只统计容量淘汰，不把显式删除算进去。
type localCache struct {
	lru     *lru.Cache[string, localEntry]
	softTTL time.Duration

	hits      atomic.Uint64
	misses    atomic.Uint64
	sets      atomic.Uint64
	evictions atomic.Uint64
}

func newLocalCache(size int, softTTL time.Duration) (*localCache, error) {
	c, err := lru.New[string, localEntry](size)
	if err != nil {
		return nil, err
	}
	return &localCache{lru: c, softTTL: softTTL}, nil
}

// get 查找并前移条目。软过期命中视为 miss 并移除条目。
func (c *localCache) get(key string) ([]byte, bool) {
	entry, ok := c.lru.Get(key)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	if c.softTTL > 0 && time.Since(entry.storedAt) > c.softTTL {
		c.lru.Remove(key)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return entry.value, true
}

// set 插入或更新条目并前移；容量淘汰计入 evictions。
func (c *localCache) set(key string, value []byte) {
	if evicted := c.lru.Add(key, localEntry{value: value, storedAt: time.Now()}); evicted {
		c.evictions.Add(1)
	}
	c.sets.Add(1)
}

func (c *localCache) delete(key string) bool {
	return c.lru.Remove(key)
}

func (c *localCache) purge() {
	c.lru.Purge()
}

func (c *localCache) len() int {
	return c.lru.Len()
}
