package xgate

import (
	"log/slog"
	"time"

	"github.com/omeyang/adkit/pkg/admission/xlimit"
	"github.com/omeyang/adkit/pkg/admission/xquota"
	"github.com/omeyang/adkit/pkg/dispatch/xsched"
	"github.com/omeyang/adkit/pkg/resilience/xbreaker"
	"github.com/omeyang/adkit/pkg/resilience/xretry"
	"github.com/omeyang/adkit/pkg/storage/xtier"
	"github.com/omeyang/adkit/pkg/upstream/xads"
)

// 默认成本与超时。
const (
	// DefaultCostRead 一次读操作的预估成本单位数。
	DefaultCostRead int64 = 10

	// DefaultCostWrite 单个变更操作的预估成本单位数。
	DefaultCostWrite int64 = 50

	// DefaultTimeout 每操作的默认等待超时。
	DefaultTimeout = 120 * time.Second

	// DefaultSearchUrgency 读操作默认紧急度。
	DefaultSearchUrgency = 50

	// DefaultMutateUrgency 写操作默认紧急度（变更优先于报表）。
	DefaultMutateUrgency = 70
)

// Gate 操作流水线。
// 所有方法并发安全；依赖在构造时注入，本体无可变状态。
type Gate struct {
	upstream  xads.Client
	governor  *xquota.Governor
	scheduler *xsched.Scheduler
	cache     *xtier.Cache
	limiter   *xlimit.TenantLimiter
	breaker   *xbreaker.Breaker
	retryer   *xretry.Retryer
	logger    *slog.Logger

	costRead  int64
	costWrite int64
	opTimeout time.Duration
}

// New 创建流水线。
// upstream、governor、scheduler 必填；cache 可为 nil（全局关闭缓存）。
func New(upstream xads.Client, governor *xquota.Governor, scheduler *xsched.Scheduler, cache *xtier.Cache, opts ...Option) (*Gate, error) {
	if upstream == nil {
		return nil, ErrNilUpstream
	}
	if governor == nil {
		return nil, ErrNilGovernor
	}
	if scheduler == nil {
		return nil, ErrNilScheduler
	}

	g := &Gate{
		upstream:  upstream,
		governor:  governor,
		scheduler: scheduler,
		cache:     cache,
		breaker:   xbreaker.New("upstream"),
		retryer: xretry.NewRetryer(
			xretry.WithRetryPolicy(xretry.NewClassifiedRetry(xretry.DefaultMaxAttempts)),
			xretry.WithBackoffPolicy(xretry.NewExponentialBackoff()),
		),
		logger:    slog.Default(),
		costRead:  DefaultCostRead,
		costWrite: DefaultCostWrite,
		opTimeout: DefaultTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

// Stats 流水线聚合读出，供运维端点使用。
type Stats struct {
	Scheduler xsched.Stats `json:"scheduler"`
	Cache     *xtier.Stats `json:"cache,omitempty"`
}

// Stats 返回调度器与缓存的统计快照。
func (g *Gate) Stats() Stats {
	s := Stats{Scheduler: g.scheduler.Stats()}
	if g.cache != nil {
		cacheStats := g.cache.Stats()
		s.Cache = &cacheStats
	}
	return s
}
