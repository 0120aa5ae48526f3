package xconf

import (
	"fmt"
	"time"
)

// RetryConfig 重试策略参数。
type RetryConfig struct {
	// MaxAttempts 最大尝试次数（包含首次）。
	MaxAttempts int `koanf:"max_attempts"`

	// InitialDelay 退避初始延迟。
	InitialDelay time.Duration `koanf:"initial_delay"`

	// MaxDelay 退避延迟上限。
	MaxDelay time.Duration `koanf:"max_delay"`
}

// RateLimitConfig 租户速率限制参数。
type RateLimitConfig struct {
	// Enabled 是否启用租户级速率限制。
	Enabled bool `koanf:"enabled"`

	// Rate 每窗口允许的提交次数。
	Rate int `koanf:"rate"`

	// Burst 突发额度。
	Burst int `koanf:"burst"`

	// Period 窗口时长。
	Period time.Duration `koanf:"period"`
}

// Config 流水线配置。
type Config struct {
	// Workers 调度器 worker 数量。
	Workers int `koanf:"workers"`

	// LRUSize 本地缓存最大条目数。
	LRUSize int `koanf:"lru_size"`

	// GlobalDaily 全局日额的默认重置值。
	GlobalDaily int64 `koanf:"global_daily"`

	// OperationTimeout 每操作的等待超时。
	OperationTimeout time.Duration `koanf:"operation_timeout"`

	// CostRead 读操作成本单位数。
	CostRead int64 `koanf:"cost_read"`

	// CostWrite 单个变更操作成本单位数。
	CostWrite int64 `koanf:"cost_write"`

	// BronzeReserve bronze 保留水位（全局日额的比例，[0, 1)）。
	BronzeReserve float64 `koanf:"bronze_reserve"`

	// TTLOverrides 按服务类型覆盖共享层 TTL 表。
	TTLOverrides map[string]time.Duration `koanf:"ttl_overrides"`

	// Retry 重试策略参数。
	Retry RetryConfig `koanf:"retry"`

	// RateLimit 租户速率限制参数。
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

// Default 返回默认配置。
func Default() Config {
	return Config{
		Workers:          8,
		LRUSize:          10000,
		GlobalDaily:      100000,
		OperationTimeout: 120 * time.Second,
		CostRead:         10,
		CostWrite:        50,
		BronzeReserve:    0.15,
		Retry: RetryConfig{
			MaxAttempts:  3,
			InitialDelay: time.Second,
			MaxDelay:     10 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Rate:   10,
			Burst:  20,
			Period: time.Second,
		},
	}
}

// Validate 校验配置。
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.LRUSize < 1 {
		return fmt.Errorf("%w: lru_size must be positive, got %d", ErrInvalidConfig, c.LRUSize)
	}
	if c.GlobalDaily < 0 {
		return fmt.Errorf("%w: global_daily must not be negative, got %d", ErrInvalidConfig, c.GlobalDaily)
	}
	if c.OperationTimeout <= 0 {
		return fmt.Errorf("%w: operation_timeout must be positive, got %v", ErrInvalidConfig, c.OperationTimeout)
	}
	if c.CostRead < 1 || c.CostWrite < 1 {
		return fmt.Errorf("%w: costs must be positive, got read=%d write=%d", ErrInvalidConfig, c.CostRead, c.CostWrite)
	}
	if c.BronzeReserve < 0 || c.BronzeReserve >= 1 {
		return fmt.Errorf("%w: bronze_reserve must be in [0, 1), got %v", ErrInvalidConfig, c.BronzeReserve)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("%w: retry.max_attempts must be positive, got %d", ErrInvalidConfig, c.Retry.MaxAttempts)
	}
	if c.Retry.InitialDelay <= 0 || c.Retry.MaxDelay < c.Retry.InitialDelay {
		return fmt.Errorf("%w: retry delays invalid: initial=%v max=%v", ErrInvalidConfig, c.Retry.InitialDelay, c.Retry.MaxDelay)
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.Rate < 1 || c.RateLimit.Burst < 1 || c.RateLimit.Period <= 0 {
			return fmt.Errorf("%w: rate_limit invalid: rate=%d burst=%d period=%v",
				ErrInvalidConfig, c.RateLimit.Rate, c.RateLimit.Burst, c.RateLimit.Period)
		}
	}
	for service, ttl := range c.TTLOverrides {
		if ttl <= 0 {
			return fmt.Errorf("%w: ttl_overrides[%s] must be positive, got %v", ErrInvalidConfig, service, ttl)
		}
	}
	return nil
}
