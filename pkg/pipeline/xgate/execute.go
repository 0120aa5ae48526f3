package xgate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/omeyang/adkit/pkg/admission/xquota"
	"github.com/omeyang/adkit/pkg/context/xtenant"
	"github.com/omeyang/adkit/pkg/core/xaderr"
	"github.com/omeyang/adkit/pkg/dispatch/xsched"
	"github.com/omeyang/adkit/pkg/resilience/xbreaker"
	"github.com/omeyang/adkit/pkg/resilience/xretry"
	"github.com/omeyang/adkit/pkg/storage/xtier"
	"github.com/omeyang/adkit/pkg/upstream/xads"
)

// ExecuteSearch 执行读操作。
//
// 缓存命中直接短路返回：不准入、不调度、不扣费。未命中走完整管线，
// 成功后在 worker 内扣费、在此处回写两层缓存。urgency 越界会被
// 调度器钳制到 [0, 99]；一般调用传 DefaultSearchUrgency。
func (g *Gate) ExecuteSearch(ctx context.Context, req SearchRequest, urgency int) ([]xads.Record, error) {
	req = req.normalize()

	tenantID, err := g.resolveTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if req.Query == "" {
		return nil, xaderr.NewValidation("query is required")
	}

	cacheEnabled := g.cache != nil && !req.DisableCache
	var fingerprint string
	if cacheEnabled {
		fingerprint = xtier.Fingerprint(tenantID, "search", map[string]string{
			"query":     req.Query,
			"page_size": strconv.Itoa(req.PageSize),
		})
		if records, ok := g.cachedRecords(ctx, fingerprint); ok {
			g.logger.Info("xgate: cache hit for search",
				slog.String("tenant_id", tenantID))
			return records, nil
		}
	}

	cost := g.costRead
	tier, err := g.admit(ctx, tenantID, cost)
	if err != nil {
		return nil, err
	}

	// 已调度的工作不随请求取消/超时而中止：保留 ctx 的值、剥离取消。
	taskCtx := context.WithoutCancel(ctx)
	task := func() (any, error) {
		records, err := xretry.DoWithResult(taskCtx, g.retryer,
			func(ctx context.Context) ([]xads.Record, error) {
				return g.searchOnce(ctx, tenantID, req.Query, req.PageSize)
			})
		if err != nil {
			return nil, err
		}
		// 扣费在 worker 内：流水线等待超时后工作照常完成并扣费
		g.governor.Charge(taskCtx, tenantID, cost)
		return records, nil
	}

	result, err := g.dispatch(ctx, tenantID, tier, urgency, cost, task)
	if err != nil {
		return nil, err
	}
	records := result.([]xads.Record)

	if cacheEnabled {
		g.writeCache(ctx, fingerprint, records, req.ServiceType, req.TTLOverride)
	}
	return records, nil
}

// ExecuteMutate 执行写操作。
// 不触碰缓存；成本为单操作成本 × 操作数。一般调用传 DefaultMutateUrgency。
func (g *Gate) ExecuteMutate(ctx context.Context, req MutateRequest, urgency int) (*xads.MutateResponse, error) {
	tenantID, err := g.resolveTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if len(req.Operations) == 0 {
		return nil, xaderr.NewValidation("operations are required")
	}

	cost := g.costWrite * int64(len(req.Operations))
	tier, err := g.admit(ctx, tenantID, cost)
	if err != nil {
		return nil, err
	}

	taskCtx := context.WithoutCancel(ctx)
	task := func() (any, error) {
		resp, err := xretry.DoWithResult(taskCtx, g.retryer,
			func(ctx context.Context) (*xads.MutateResponse, error) {
				return g.mutateOnce(ctx, tenantID, req.Operations, req.ValidateOnly)
			})
		if err != nil {
			return nil, err
		}
		g.governor.Charge(taskCtx, tenantID, cost)
		return resp, nil
	}

	g.logger.Debug("xgate: mutate admitted",
		slog.String("tenant_id", tenantID),
		slog.String("operation_type", req.OperationType),
		slog.Int("operations", len(req.Operations)),
		slog.Int64("cost", cost))

	result, err := g.dispatch(ctx, tenantID, tier, urgency, cost, task)
	if err != nil {
		return nil, err
	}
	return result.(*xads.MutateResponse), nil
}

// resolveTenant 取租户 ID：请求字段优先，回退 context，缺失报校验错误。
func (g *Gate) resolveTenant(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if id := xtenant.TenantID(ctx); id != "" {
		return id, nil
	}
	return "", xaderr.NewValidation("tenant id is required")
}

// admit 执行准入链：层级解析 → 暂停检查 → 速率限制 → 配额准入。
func (g *Gate) admit(ctx context.Context, tenantID string, cost int64) (tier xquota.Tier, err error) {
	tier = g.governor.GetTier(ctx, tenantID)

	if g.governor.IsPaused(ctx, tenantID) {
		return tier, xaderr.NewQuotaExceeded(
			fmt.Sprintf("tenant %s is paused", tenantID), tenantID)
	}

	if g.limiter != nil {
		if err := g.limiter.Allow(ctx, tenantID); err != nil {
			return tier, err
		}
	}

	if !g.governor.CanRun(ctx, tenantID, cost, tier) {
		return tier, xaderr.NewQuotaExceeded("insufficient quota", tenantID)
	}
	return tier, nil
}

// dispatch 提交调度并带超时等待 handle。
func (g *Gate) dispatch(ctx context.Context, tenantID string, tier xquota.Tier, urgency int, cost int64, task xsched.Task) (any, error) {
	handle, err := g.scheduler.Submit(tenantID, tier, urgency, cost, task)
	if err != nil {
		return nil, xaderr.NewInternal("scheduler unavailable").WithCause(err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, g.opTimeout)
	defer cancel()

	result, err := handle.Wait(waitCtx)
	if err != nil {
		return nil, g.classifyWaitError(ctx, err)
	}
	return result, nil
}

// classifyWaitError 将等待错误归入分类法。
// 等待超时 → TIMEOUT；调用方取消原样上抛；关停丢弃 → INTERNAL；
// worker 内的错误已经是分类错误，原样传递。
func (g *Gate) classifyWaitError(ctx context.Context, err error) error {
	if _, ok := xaderr.FromError(err); ok {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return xaderr.NewTimeout("operation wait timed out", int(g.opTimeout.Seconds()))
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, xsched.ErrSchedulerStopped) {
		return xaderr.NewInternal("scheduler stopped before operation ran").WithCause(err)
	}
	return xaderr.NewInternal("operation failed").WithCause(err)
}

// searchOnce 一次上游查询：熔断保护 + 错误映射。
func (g *Gate) searchOnce(ctx context.Context, customerID, query string, pageSize int) ([]xads.Record, error) {
	call := func() ([]xads.Record, error) {
		records, err := g.upstream.Search(ctx, customerID, query, pageSize)
		if err != nil {
			return nil, xaderr.MapUpstream(err)
		}
		return records, nil
	}
	if g.breaker == nil {
		return call()
	}
	return xbreaker.Execute(ctx, g.breaker, call)
}

// mutateOnce 一次上游变更：熔断保护 + 错误映射。
func (g *Gate) mutateOnce(ctx context.Context, customerID string, operations []xads.MutateOperation, validateOnly bool) (*xads.MutateResponse, error) {
	call := func() (*xads.MutateResponse, error) {
		resp, err := g.upstream.Mutate(ctx, customerID, operations, validateOnly)
		if err != nil {
			return nil, xaderr.MapUpstream(err)
		}
		return resp, nil
	}
	if g.breaker == nil {
		return call()
	}
	return xbreaker.Execute(ctx, g.breaker, call)
}

// cachedRecords 读缓存并反序列化。损坏的条目按未命中处理。
func (g *Gate) cachedRecords(ctx context.Context, fingerprint string) ([]xads.Record, bool) {
	data, ok := g.cache.Get(ctx, fingerprint)
	if !ok {
		return nil, false
	}
	var records []xads.Record
	if err := json.Unmarshal(data, &records); err != nil {
		g.logger.Error("xgate: corrupt cache entry, treating as miss",
			slog.String("fingerprint", fingerprint), slog.Any("error", err))
		return nil, false
	}
	return records, true
}

// writeCache 序列化并回写两层缓存。失败只记日志。
func (g *Gate) writeCache(ctx context.Context, fingerprint string, records []xads.Record, serviceType string, ttlOverride time.Duration) {
	payload, err := json.Marshal(records)
	if err != nil {
		g.logger.Error("xgate: cache marshal failed",
			slog.String("fingerprint", fingerprint), slog.Any("error", err))
		return
	}
	g.cache.Set(ctx, fingerprint, payload, serviceType, ttlOverride)
}
