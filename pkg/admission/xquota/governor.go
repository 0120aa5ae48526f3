package xquota

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// 共享存储键名。值为十进制字符串或字节 "1"。
const (
	keyGlobalDaily     = "quota:global_daily"
	keyGlobalRemaining = "quota:global_remaining"
)

func clientRemainingKey(tenantID string) string {
	return fmt.Sprintf("quota:client:%s:remaining", tenantID)
}

func clientTierKey(tenantID string) string {
	return fmt.Sprintf("client:%s:tier", tenantID)
}

func clientPausedKey(tenantID string) string {
	return fmt.Sprintf("client:%s:paused", tenantID)
}

// Governor 配额治理器。
// 所有方法并发安全；共享状态全部在 Redis，本体无可变状态。
type Governor struct {
	rdb           redis.UniversalClient
	logger        *slog.Logger
	bronzeReserve float64
}

// NewGovernor 创建配额治理器。
// client 必须是已初始化的 redis.UniversalClient。
func NewGovernor(client redis.UniversalClient, opts ...Option) (*Governor, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	g := &Governor{
		rdb:           client,
		logger:        slog.Default(),
		bronzeReserve: DefaultBronzeReserve,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

// CanRun 回答准入查询：tenant 的一次 units 成本操作现在能否执行。
//
// 读取全局余额、租户余额与全局日额（缺省键分别读作 0、0、1）；
// 任一余额低于 units 即拒绝。bronze 层级额外受保留水位约束：
// 全局余额低于 bronzeReserve × 日额时拒绝，为高层级保留余量。
//
// 存储错误时 fail-open 返回 true：准入决定已经做出的前提下，
// 随后的 Charge 不会扣成功，存储恢复后下一次准入即反映真实余额。
func (g *Governor) CanRun(ctx context.Context, tenantID string, units int64, tier Tier) bool {
	globalRemaining, err := g.getInt(ctx, keyGlobalRemaining, 0)
	if err != nil {
		g.logger.Error("xquota: admission check failed, failing open",
			slog.String("tenant_id", tenantID), slog.Any("error", err))
		return true
	}
	clientRemaining, err := g.getInt(ctx, clientRemainingKey(tenantID), 0)
	if err != nil {
		g.logger.Error("xquota: admission check failed, failing open",
			slog.String("tenant_id", tenantID), slog.Any("error", err))
		return true
	}
	globalDaily, err := g.getInt(ctx, keyGlobalDaily, 1)
	if err != nil {
		g.logger.Error("xquota: admission check failed, failing open",
			slog.String("tenant_id", tenantID), slog.Any("error", err))
		return true
	}

	if globalRemaining < units || clientRemaining < units {
		g.logger.Warn("xquota: quota insufficient",
			slog.String("tenant_id", tenantID),
			slog.Int64("global_remaining", globalRemaining),
			slog.Int64("client_remaining", clientRemaining),
			slog.Int64("needed", units))
		return false
	}

	if tier == TierBronze {
		threshold := g.bronzeReserve * float64(globalDaily)
		if float64(globalRemaining) < threshold {
			g.logger.Warn("xquota: bronze tier throttled",
				slog.String("tenant_id", tenantID),
				slog.Int64("global_remaining", globalRemaining),
				slog.Float64("threshold", threshold))
			return false
		}
	}

	return true
}

// Charge 在操作成功后扣费：单次流水线往返里同时递减全局与租户余额。
// 错误只记日志不上抛——准入决定已经做出，扣费失败不应二次惩罚一次
// 成功的操作。
func (g *Governor) Charge(ctx context.Context, tenantID string, units int64) {
	_, err := g.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.DecrBy(ctx, keyGlobalRemaining, units)
		pipe.DecrBy(ctx, clientRemainingKey(tenantID), units)
		return nil
	})
	if err != nil {
		g.logger.Error("xquota: charge failed",
			slog.String("tenant_id", tenantID), slog.Int64("units", units), slog.Any("error", err))
		return
	}
	g.logger.Debug("xquota: charged",
		slog.String("tenant_id", tenantID), slog.Int64("units", units))
}

// Refund 对称的增额操作。仅由显式的运维策略调用：失败的操作默认不退款，
// 因为许多失败（超时、限流）同样消耗了上游容量。
func (g *Governor) Refund(ctx context.Context, tenantID string, units int64) {
	_, err := g.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.IncrBy(ctx, keyGlobalRemaining, units)
		pipe.IncrBy(ctx, clientRemainingKey(tenantID), units)
		return nil
	})
	if err != nil {
		g.logger.Error("xquota: refund failed",
			slog.String("tenant_id", tenantID), slog.Int64("units", units), slog.Any("error", err))
		return
	}
	g.logger.Debug("xquota: refunded",
		slog.String("tenant_id", tenantID), slog.Int64("units", units))
}

// GetTier 返回租户层级。缺省键与读取错误都归入 TierBronze。
func (g *Governor) GetTier(ctx context.Context, tenantID string) Tier {
	val, err := g.rdb.Get(ctx, clientTierKey(tenantID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			g.logger.Error("xquota: get tier failed",
				slog.String("tenant_id", tenantID), slog.Any("error", err))
		}
		return TierBronze
	}
	return ParseTier(val)
}

// SetTier 设置租户层级。
func (g *Governor) SetTier(ctx context.Context, tenantID string, tier Tier) error {
	if err := g.rdb.Set(ctx, clientTierKey(tenantID), string(tier), 0).Err(); err != nil {
		return fmt.Errorf("xquota: set tier: %w", err)
	}
	g.logger.Info("xquota: tier set",
		slog.String("tenant_id", tenantID), slog.String("tier", string(tier)))
	return nil
}

// IsPaused 检查租户是否被暂停。缺省键与读取错误都视为未暂停。
func (g *Governor) IsPaused(ctx context.Context, tenantID string) bool {
	val, err := g.rdb.Get(ctx, clientPausedKey(tenantID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			g.logger.Error("xquota: pause check failed",
				slog.String("tenant_id", tenantID), slog.Any("error", err))
		}
		return false
	}
	return val == "1"
}

// Pause 暂停租户：暂停期间所有操作在流水线入口即被拒绝。
func (g *Governor) Pause(ctx context.Context, tenantID string) error {
	if err := g.rdb.Set(ctx, clientPausedKey(tenantID), "1", 0).Err(); err != nil {
		return fmt.Errorf("xquota: pause: %w", err)
	}
	g.logger.Info("xquota: tenant paused", slog.String("tenant_id", tenantID))
	return nil
}

// Resume 恢复被暂停的租户。
func (g *Governor) Resume(ctx context.Context, tenantID string) error {
	if err := g.rdb.Del(ctx, clientPausedKey(tenantID)).Err(); err != nil {
		return fmt.Errorf("xquota: resume: %w", err)
	}
	g.logger.Info("xquota: tenant resumed", slog.String("tenant_id", tenantID))
	return nil
}

// SetClientQuota 设置租户余额。
func (g *Governor) SetClientQuota(ctx context.Context, tenantID string, quota int64) error {
	if quota < 0 {
		return ErrInvalidQuota
	}
	if err := g.rdb.Set(ctx, clientRemainingKey(tenantID), quota, 0).Err(); err != nil {
		return fmt.Errorf("xquota: set client quota: %w", err)
	}
	g.logger.Info("xquota: client quota set",
		slog.String("tenant_id", tenantID), slog.Int64("quota", quota))
	return nil
}

// ResetGlobal 重置全局日额：单次流水线往返里同时写入日额与余额。
// 重置后 global_remaining == global_daily == daily，并发扣费导致的
// 瞬时负值在此归正。
func (g *Governor) ResetGlobal(ctx context.Context, daily int64) error {
	if daily < 0 {
		return ErrInvalidQuota
	}
	_, err := g.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, keyGlobalDaily, daily, 0)
		pipe.Set(ctx, keyGlobalRemaining, daily, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("xquota: reset global: %w", err)
	}
	g.logger.Info("xquota: global quota reset", slog.Int64("daily", daily))
	return nil
}

// getInt 读取整数键；缺省键返回 def。
func (g *Governor) getInt(ctx context.Context, key string, def int64) (int64, error) {
	val, err := g.rdb.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return def, nil
		}
		return 0, err
	}
	return val, nil
}
