package xsched

import (
	"context"
	"time"

	"github.com/omeyang/adkit/pkg/admission/xquota"
)

// Task 操作的工作闭包。
// 返回值经 Handle 原样传递给提交方；取消语义由闭包自行捕获的
// context 承担。
type Task func() (any, error)

// Operation 一次已提交操作的内存记录。
// 提交时创建，完成或失败时销毁，不做持久化。
type Operation struct {
	// ID 操作标识，用于日志关联。
	ID string

	// TenantID 所属租户。
	TenantID string

	// Tier 提交时刻的层级快照。
	Tier xquota.Tier

	// Urgency 紧急度，提交时已钳制到 [0, 99]。
	Urgency int

	// CostUnits 预估成本单位数。
	CostUnits int64

	// Priority 派生优先级，小者先行。
	Priority int

	submittedAt time.Time
	task        Task
	handle      *Handle
	index       int // 堆内下标
}

// computePriority 计算派生优先级，返回 (priority, 钳制后的 urgency)。
func computePriority(urgency int, tier xquota.Tier) (int, int) {
	if urgency < 0 {
		urgency = 0
	} else if urgency > 99 {
		urgency = 99
	}
	base := 100 - urgency
	return base / tier.Weight(), urgency
}

// Handle 一次提交的完成句柄。
// 提交方只等待自己的 handle，不参与全局排空。
type Handle struct {
	done   chan struct{}
	result any
	err    error
}

func newHandle() *Handle {
	return &Handle{done: make(chan struct{})}
}

// complete 写入结果并关闭 done。只能调用一次（由调度器保证）。
func (h *Handle) complete(result any, err error) {
	h.result = result
	h.err = err
	close(h.done)
}

// Done 返回操作完成后关闭的 channel。
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait 等待操作完成或 ctx 到期。
// ctx 到期返回 ctx.Err()；注意已调度的工作不会被强制中止，
// 它仍会执行完毕，成功后的扣费照常发生。
func (h *Handle) Wait(ctx context.Context) (any, error) {
	select {
	case <-h.done:
		return h.result, h.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
