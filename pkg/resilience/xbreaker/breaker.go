package xbreaker

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/omeyang/adkit/pkg/core/xaderr"
)

// 默认配置常量
const (
	// DefaultConsecutiveFailures 默认连续失败触发阈值。
	DefaultConsecutiveFailures uint32 = 5

	// DefaultTimeout 默认 Open→HalfOpen 超时时间。
	DefaultTimeout = 60 * time.Second

	// DefaultMaxRequests 默认 HalfOpen 最大请求数。
	DefaultMaxRequests uint32 = 1
)

// State 熔断器状态。
type State = gobreaker.State

// Counts 统计窗口内的请求计数。
type Counts = gobreaker.Counts

// Breaker 熔断器执行器。
type Breaker struct {
	name          string
	failures      uint32
	timeout       time.Duration
	maxRequests   uint32
	onStateChange func(name string, from, to State)

	cb *gobreaker.CircuitBreaker[any]
}

// Option 熔断器配置选项。
type Option func(*Breaker)

// WithConsecutiveFailures 设置连续失败触发阈值。零值将被忽略。
func WithConsecutiveFailures(n uint32) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.failures = n
		}
	}
}

// WithTimeout 设置 Open→HalfOpen 的恢复超时。非正值将被忽略。
func WithTimeout(d time.Duration) Option {
	return func(b *Breaker) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithMaxRequests 设置 HalfOpen 状态下允许的最大请求数。零值将被忽略。
func WithMaxRequests(n uint32) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.maxRequests = n
		}
	}
}

// WithOnStateChange 设置状态变化回调。
//
// 设计决策: 回调通过 goroutine 异步执行。gobreaker 在内部 mutex
// 持有期间调用 OnStateChange，同步回调若再触碰同一 Breaker 的
// State()/Counts() 会死锁。异步的代价是回调顺序不保证。
func WithOnStateChange(f func(name string, from, to State)) Option {
	return func(b *Breaker) {
		if f != nil {
			b.onStateChange = f
		}
	}
}

// New 创建熔断器。
// name 用于日志与错误信息标识，建议非空。
func New(name string, opts ...Option) *Breaker {
	b := &Breaker{
		name:        name,
		failures:    DefaultConsecutiveFailures,
		timeout:     DefaultTimeout,
		maxRequests: DefaultMaxRequests,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}

	st := gobreaker.Settings{
		Name:        b.name,
		MaxRequests: b.maxRequests,
		Timeout:     b.timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= b.failures
		},
	}
	if b.onStateChange != nil {
		cb := b.onStateChange
		st.OnStateChange = func(name string, from, to gobreaker.State) {
			go func() {
				defer func() {
					if r := recover(); r != nil {
						slog.Error("xbreaker: OnStateChange callback panicked",
							slog.String("name", name), slog.Any("panic", r))
					}
				}()
				cb(name, from, to)
			}()
		}
	}

	b.cb = gobreaker.NewCircuitBreaker[any](st)
	return b
}

// Do 执行受熔断器保护的操作。
// Open / 半开超限返回 xaderr 的 CIRCUIT_BREAKER 分类错误；
// ctx 已取消时直接返回 ctx 错误，不计入熔断统计。
func (b *Breaker) Do(ctx context.Context, fn func() error) error {
	if fn == nil {
		return ErrNilFunc
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := b.cb.Execute(func() (any, error) {
		return nil, fn()
	})
	return b.mapError(err)
}

// Execute 执行受熔断器保护的操作（泛型版本）。
// 包级函数——Go 不支持方法的类型参数。
func Execute[T any](ctx context.Context, b *Breaker, fn func() (T, error)) (T, error) {
	var zero T
	if b == nil {
		return zero, ErrNilBreaker
	}
	if fn == nil {
		return zero, ErrNilFunc
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	result, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		return zero, b.mapError(err)
	}
	if result == nil {
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		// fn() 的返回值类型始终为 T，此路径理论不可达；
		// 防御性返回错误而非静默丢数据
		return zero, ErrUnexpectedResult
	}
	return typed, nil
}

// mapError 将 gobreaker 的哨兵错误映射为分类错误，其余原样返回。
// 只检查直接哨兵，不遍历错误链——避免嵌套熔断场景的错误归因混乱。
func (b *Breaker) mapError(err error) error {
	if err == nil {
		return nil
	}
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return xaderr.NewCircuitBreaker("upstream circuit breaker open: " + b.name).WithCause(err)
	}
	return err
}

// State 返回熔断器当前状态。
func (b *Breaker) State() State {
	return b.cb.State()
}

// Counts 返回当前统计计数。
func (b *Breaker) Counts() Counts {
	return b.cb.Counts()
}

// Name 返回熔断器名称。
func (b *Breaker) Name() string {
	return b.name
}
