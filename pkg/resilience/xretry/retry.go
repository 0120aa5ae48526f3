package xretry

import (
	"context"
	"errors"
	"time"
)

// RetryPolicy 定义重试策略接口。
type RetryPolicy interface {
	// MaxAttempts 返回最大尝试次数（包含首次尝试）。
	MaxAttempts() int

	// ShouldRetry 判断是否应该重试。
	// attempt 为已失败次数（从 1 开始），err 为上次执行的错误。
	ShouldRetry(ctx context.Context, attempt int, err error) bool
}

// BackoffPolicy 定义退避策略接口。
type BackoffPolicy interface {
	// NextDelay 返回下次重试的延迟时间。
	// attempt 从 1 开始。
	NextDelay(attempt int) time.Duration
}

// Executor 重试执行器接口，便于调用方 mock。
type Executor interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// RetryableError 可重试错误接口。
// xaderr.Error 实现此接口，重试层据此与分类法解耦。
type RetryableError interface {
	error
	Retryable() bool
}

// IsRetryable 检查错误是否可重试。
// 规则：
//   - nil：视为成功，不重试
//   - 实现 RetryableError：按 Retryable() 判断
//   - 其他错误：不可重试——分类法之外的错误没有重试语义
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var re RetryableError
	if errors.As(err, &re) {
		return re.Retryable()
	}
	return false
}
