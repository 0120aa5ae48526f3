package xgate

import (
	"log/slog"
	"time"

	"github.com/omeyang/adkit/pkg/admission/xlimit"
	"github.com/omeyang/adkit/pkg/resilience/xbreaker"
	"github.com/omeyang/adkit/pkg/resilience/xretry"
)

// Option 定义 Gate 可选配置函数类型。
type Option func(*Gate)

// WithLogger 设置自定义日志记录器。
// 默认使用 slog.Default()。传入 nil 将被忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithCosts 设置读/写操作的成本单位数。非正值将被忽略。
func WithCosts(read, write int64) Option {
	return func(g *Gate) {
		if read > 0 {
			g.costRead = read
		}
		if write > 0 {
			g.costWrite = write
		}
	}
}

// WithTimeout 设置每操作的等待超时。非正值将被忽略。
func WithTimeout(d time.Duration) Option {
	return func(g *Gate) {
		if d > 0 {
			g.opTimeout = d
		}
	}
}

// WithRateLimiter 启用租户级速率限制。默认不启用。
func WithRateLimiter(l *xlimit.TenantLimiter) Option {
	return func(g *Gate) {
		g.limiter = l
	}
}

// WithBreaker 替换上游熔断器。传入 nil 表示关闭熔断保护。
func WithBreaker(b *xbreaker.Breaker) Option {
	return func(g *Gate) {
		g.breaker = b
	}
}

// WithRetryer 替换重试执行器。传入 nil 将被忽略。
func WithRetryer(r *xretry.Retryer) Option {
	return func(g *Gate) {
		if r != nil {
			g.retryer = r
		}
	}
}
