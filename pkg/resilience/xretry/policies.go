package xretry

import (
	"context"

	"github.com/omeyang/adkit/pkg/core/xaderr"
)

// DefaultMaxAttempts 默认最大尝试次数（包含首次）。
const DefaultMaxAttempts = 3

// FixedRetryPolicy 固定次数重试策略：凡可重试错误都重试。
type FixedRetryPolicy struct {
	maxAttempts int
}

// NewFixedRetry 创建固定次数重试策略。
// maxAttempts 最小为 1（即不重试）。
func NewFixedRetry(maxAttempts int) *FixedRetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &FixedRetryPolicy{maxAttempts: maxAttempts}
}

func (p *FixedRetryPolicy) MaxAttempts() int {
	return p.maxAttempts
}

func (p *FixedRetryPolicy) ShouldRetry(_ context.Context, attempt int, err error) bool {
	if attempt >= p.maxAttempts {
		return false
	}
	return IsRetryable(err)
}

// ClassifiedRetryPolicy 分类重试策略。
//
// 只重试 retryable 位为真、且 Kind 属于 RATE_LIMIT / EXTERNAL_API 的
// 分类错误。QUOTA 与 TIMEOUT 即使可重试也直接上抛：配额恢复发生在
// 下一次准入，超时应surface给调用方而非在 worker 内消磨退避。
type ClassifiedRetryPolicy struct {
	maxAttempts int
}

// NewClassifiedRetry 创建分类重试策略。
// maxAttempts 最小为 1。
func NewClassifiedRetry(maxAttempts int) *ClassifiedRetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &ClassifiedRetryPolicy{maxAttempts: maxAttempts}
}

func (p *ClassifiedRetryPolicy) MaxAttempts() int {
	return p.maxAttempts
}

func (p *ClassifiedRetryPolicy) ShouldRetry(_ context.Context, attempt int, err error) bool {
	if attempt >= p.maxAttempts {
		return false
	}
	e, ok := xaderr.FromError(err)
	if !ok || !e.Retryable() {
		return false
	}
	return e.Kind == xaderr.KindRateLimit || e.Kind == xaderr.KindExternalAPI
}

// 确保实现了 RetryPolicy 接口
var (
	_ RetryPolicy = (*FixedRetryPolicy)(nil)
	_ RetryPolicy = (*ClassifiedRetryPolicy)(nil)
)
