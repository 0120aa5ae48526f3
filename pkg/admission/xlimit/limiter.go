package xlimit

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"

	"github.com/omeyang/adkit/pkg/core/xaderr"
)

// 默认限流参数：每租户每秒 10 次提交，突发 20。
const (
	DefaultRate   = 10
	DefaultBurst  = 20
	DefaultPeriod = time.Second
)

// TenantLimiter 租户级速率限制器。
type TenantLimiter struct {
	limiter *redis_rate.Limiter
	logger  *slog.Logger
	rate    int
	burst   int
	period  time.Duration
}

// Option 定义 TenantLimiter 可选配置函数类型。
type Option func(*TenantLimiter)

// WithLogger 设置自定义日志记录器。
// 默认使用 slog.Default()。传入 nil 将被忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(l *TenantLimiter) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithLimit 设置速率参数。非正值将被忽略，保持默认值。
func WithLimit(rate, burst int, period time.Duration) Option {
	return func(l *TenantLimiter) {
		if rate > 0 {
			l.rate = rate
		}
		if burst > 0 {
			l.burst = burst
		}
		if period > 0 {
			l.period = period
		}
	}
}

// NewTenantLimiter 创建租户级速率限制器。
// client 必须是已初始化的 redis.UniversalClient。
func NewTenantLimiter(client redis.UniversalClient, opts ...Option) (*TenantLimiter, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	l := &TenantLimiter{
		limiter: redis_rate.NewLimiter(client),
		logger:  slog.Default(),
		rate:    DefaultRate,
		burst:   DefaultBurst,
		period:  DefaultPeriod,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l, nil
}

// Allow 检查租户此刻能否提交一次操作。
//
// 拒绝返回 xaderr 的 RATE_LIMIT 分类错误，附 retry_after（向上取整秒）。
// 存储错误 fail-open 返回 nil：速率限制是节流手段而非正确性依赖。
func (l *TenantLimiter) Allow(ctx context.Context, tenantID string) error {
	res, err := l.limiter.Allow(ctx, l.key(tenantID), redis_rate.Limit{
		Rate:   l.rate,
		Burst:  l.burst,
		Period: l.period,
	})
	if err != nil {
		l.logger.Error("xlimit: rate check failed, failing open",
			slog.String("tenant_id", tenantID), slog.Any("error", err))
		return nil
	}

	if res.Allowed > 0 {
		return nil
	}

	retryAfter := int(math.Ceil(res.RetryAfter.Seconds()))
	l.logger.Warn("xlimit: tenant rate limited",
		slog.String("tenant_id", tenantID),
		slog.Int("retry_after", retryAfter))
	return xaderr.NewRateLimit(
		fmt.Sprintf("tenant %s exceeded submit rate", tenantID), retryAfter)
}

// Reset 重置租户的限流计数。
func (l *TenantLimiter) Reset(ctx context.Context, tenantID string) error {
	if err := l.limiter.Reset(ctx, l.key(tenantID)); err != nil {
		return fmt.Errorf("xlimit: reset: %w", err)
	}
	return nil
}

func (l *TenantLimiter) key(tenantID string) string {
	return "ratelimit:client:" + tenantID
}
