package xquota

import (
	"context"
	"fmt"
	"math"
)

// Status 全局配额状态读出，供运维端点使用。
type Status struct {
	GlobalRemaining   int64   `json:"global_remaining"`
	GlobalDaily       int64   `json:"global_daily"`
	GlobalUsed        int64   `json:"global_used"`
	GlobalUsedPercent float64 `json:"global_used_percent"`
}

// ClientStatus 租户配额状态读出。
type ClientStatus struct {
	TenantID  string `json:"client_id"`
	Remaining int64  `json:"remaining"`
	Tier      Tier   `json:"tier"`
	Paused    bool   `json:"paused"`
}

// Status 返回全局配额状态。
func (g *Governor) Status(ctx context.Context) (Status, error) {
	remaining, err := g.getInt(ctx, keyGlobalRemaining, 0)
	if err != nil {
		return Status{}, fmt.Errorf("xquota: read status: %w", err)
	}
	daily, err := g.getInt(ctx, keyGlobalDaily, 0)
	if err != nil {
		return Status{}, fmt.Errorf("xquota: read status: %w", err)
	}

	used := daily - remaining
	var usedPercent float64
	if daily > 0 {
		usedPercent = math.Round(float64(used)/float64(daily)*100*100) / 100
	}
	return Status{
		GlobalRemaining:   remaining,
		GlobalDaily:       daily,
		GlobalUsed:        used,
		GlobalUsedPercent: usedPercent,
	}, nil
}

// ClientStatus 返回租户配额状态。
// tier 与 paused 的读取错误按各自方法的缺省语义处理，不中断读出。
func (g *Governor) ClientStatus(ctx context.Context, tenantID string) (ClientStatus, error) {
	remaining, err := g.getInt(ctx, clientRemainingKey(tenantID), 0)
	if err != nil {
		return ClientStatus{}, fmt.Errorf("xquota: read client status: %w", err)
	}
	return ClientStatus{
		TenantID:  tenantID,
		Remaining: remaining,
		Tier:      g.GetTier(ctx, tenantID),
		Paused:    g.IsPaused(ctx, tenantID),
	}, nil
}
