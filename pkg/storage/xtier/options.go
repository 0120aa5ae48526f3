package xtier

import (
	"log/slog"
	"time"
)

// DefaultLocalSize 本地 LRU 的默认最大条目数。
const DefaultLocalSize = 10000

// Option 定义 Cache 可选配置函数类型。
type Option func(*options)

type options struct {
	localSize    int
	localTTL     time.Duration
	logger       *slog.Logger
	ttlOverrides map[string]time.Duration
}

func defaultOptions() options {
	return options{
		localSize: DefaultLocalSize,
		logger:    slog.Default(),
	}
}

// WithLocalSize 设置本地 LRU 最大条目数。
// 非正值将被忽略，保持默认值。
func WithLocalSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.localSize = n
		}
	}
}

// WithLocalTTL 给本地层启用软过期：条目自写入起超过 d 后按未命中处理。
// 用于需要本地层与共享 TTL 大致对齐的场景。默认关闭（0）。
func WithLocalTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.localTTL = d
		}
	}
}

// WithLogger 设置自定义日志记录器。
// 默认使用 slog.Default()。传入 nil 将被忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTTLOverrides 按服务类型覆盖共享层 TTL 表。
// 未覆盖的服务类型仍走静态表；非正的覆盖值将被忽略。
func WithTTLOverrides(overrides map[string]time.Duration) Option {
	return func(o *options) {
		for service, ttl := range overrides {
			if ttl <= 0 {
				continue
			}
			if o.ttlOverrides == nil {
				o.ttlOverrides = make(map[string]time.Duration, len(overrides))
			}
			o.ttlOverrides[service] = ttl
		}
	}
}
