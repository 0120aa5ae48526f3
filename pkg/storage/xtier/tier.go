package xtier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// sharedKeyPrefix 共享层键的命名空间前缀。
const sharedKeyPrefix = "cache:"

// scanBatch SCAN 游标每批返回的键数提示。
const scanBatch = 100

// Cache 两层缓存管理器。
// 所有方法并发安全。
type Cache struct {
	local        *localCache
	rdb          redis.UniversalClient
	logger       *slog.Logger
	ttlOverrides map[string]time.Duration
}

// New 创建两层缓存。
// client 必须是已初始化的 redis.UniversalClient。
func New(client redis.UniversalClient, opts ...Option) (*Cache, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	local, err := newLocalCache(o.localSize, o.localTTL)
	if err != nil {
		return nil, fmt.Errorf("xtier: create local cache: %w", err)
	}

	return &Cache{
		local:        local,
		rdb:          client,
		logger:       o.logger,
		ttlOverrides: o.ttlOverrides,
	}, nil
}

// serviceTTL 实例级 TTL 查表：先查覆盖表，再落到静态表。
func (c *Cache) serviceTTL(serviceType string) time.Duration {
	if ttl, ok := c.ttlOverrides[serviceType]; ok {
		return ttl
	}
	return ServiceTTL(serviceType)
}

// Get 读取缓存值。
// 先查本地 LRU；未命中查共享层并回填本地（promotion）。
// 共享层错误只记日志，按未命中处理。
func (c *Cache) Get(ctx context.Context, fingerprint string) ([]byte, bool) {
	if value, ok := c.local.get(fingerprint); ok {
		return value, true
	}

	value, err := c.rdb.Get(ctx, sharedKeyPrefix+fingerprint).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Error("xtier: shared tier get failed",
				slog.String("fingerprint", fingerprint), slog.Any("error", err))
		}
		return nil, false
	}

	c.local.set(fingerprint, value)
	c.logger.Debug("xtier: shared tier hit, promoted to local",
		slog.String("fingerprint", fingerprint))
	return value, true
}

// Set 写入两层缓存。
//
// TTL 取值：ttlOverride > 0 时用之，否则查服务类型表，表中没有再落到
// default。共享层错误只记日志不失败调用。
func (c *Cache) Set(ctx context.Context, fingerprint string, value []byte, serviceType string, ttlOverride time.Duration) {
	ttl := ttlOverride
	if ttl <= 0 {
		ttl = c.serviceTTL(serviceType)
	}

	c.local.set(fingerprint, value)

	if err := c.rdb.Set(ctx, sharedKeyPrefix+fingerprint, value, ttl).Err(); err != nil {
		c.logger.Error("xtier: shared tier set failed",
			slog.String("fingerprint", fingerprint), slog.Any("error", err))
		return
	}
	c.logger.Debug("xtier: cached in both tiers",
		slog.String("fingerprint", fingerprint), slog.Duration("ttl", ttl))
}

// Delete 从两层删除指定键。
func (c *Cache) Delete(ctx context.Context, fingerprint string) {
	c.local.delete(fingerprint)

	if err := c.rdb.Del(ctx, sharedKeyPrefix+fingerprint).Err(); err != nil {
		c.logger.Error("xtier: shared tier delete failed",
			slog.String("fingerprint", fingerprint), slog.Any("error", err))
	}
}

// PurgePattern 扫描共享层中匹配 pattern 的键并一次删除，返回删除数。
// pattern 是完整的共享层键模式（如 "cache:client:t1:*"）。
// 本地层不做模式扫描：残留条目随淘汰或显式删除消失（接受的过期窗口）。
func (c *Cache) PurgePattern(ctx context.Context, pattern string) (int, error) {
	var keys []string
	iter := c.rdb.Scan(ctx, 0, pattern, scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("xtier: purge scan: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	deleted, err := c.rdb.Del(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("xtier: purge delete: %w", err)
	}
	c.logger.Info("xtier: purged shared tier keys",
		slog.String("pattern", pattern), slog.Int64("deleted", deleted))
	return int(deleted), nil
}

// Stats 返回缓存统计。
func (c *Cache) Stats() Stats {
	hits := c.local.hits.Load()
	misses := c.local.misses.Load()
	total := hits + misses

	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	return Stats{
		Hits:      hits,
		Misses:    misses,
		Sets:      c.local.sets.Load(),
		Evictions: c.local.evictions.Load(),
		HitRate:   hitRate,
		LocalLen:  c.local.len(),
	}
}

// Stats 缓存统计信息。命中/未命中以本地层视角统计：
// 共享层命中经 promotion 回填后，下次访问计为本地命中。
type Stats struct {
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	Sets      uint64  `json:"sets"`
	Evictions uint64  `json:"evictions"`
	HitRate   float64 `json:"hit_rate"`
	LocalLen  int     `json:"local_len"`
}
