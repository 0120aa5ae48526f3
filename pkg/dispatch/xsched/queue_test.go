package xsched

import (
	"testing"
	"time"

	"github.com/omeyang/adkit/pkg/admission/xquota"
)

func TestComputePriority(t *testing.T) {
	tests := []struct {
		name        string
		urgency     int
		tier        xquota.Tier
		wantPrio    int
		wantClamped int
	}{
		{"gold urgency 99", 99, xquota.TierGold, 0, 99},   // 1/3 = 0
		{"bronze urgency 0", 0, xquota.TierBronze, 100, 0}, // 100/1 = 100
		{"bronze urgency 99", 99, xquota.TierBronze, 1, 99},
		{"gold urgency 50", 50, xquota.TierGold, 16, 50},   // 50/3 = 16
		{"silver urgency 50", 50, xquota.TierSilver, 25, 50}, // 50/2 = 25
		{"urgency above range is clamped", 150, xquota.TierBronze, 1, 99},
		{"urgency below range is clamped", -10, xquota.TierBronze, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prio, clamped := computePriority(tt.urgency, tt.tier)
			if prio != tt.wantPrio {
				t.Errorf("priority = %d, want %d", prio, tt.wantPrio)
			}
			if clamped != tt.wantClamped {
				t.Errorf("clamped urgency = %d, want %d", clamped, tt.wantClamped)
			}
		})
	}
}

func newQueuedOp(tenant string, tier xquota.Tier, urgency int, submittedAt time.Time) *Operation {
	priority, clamped := computePriority(urgency, tier)
	return &Operation{
		TenantID:    tenant,
		Tier:        tier,
		Urgency:     clamped,
		Priority:    priority,
		submittedAt: submittedAt,
		handle:      newHandle(),
	}
}

// 场景：Bronze/99、Gold/50、Silver/50 依提交序入队，
// 出队序为 Bronze-99 (1)、Gold-50 (16)、Silver-50 (25)。
func TestOpQueue_PriorityMix(t *testing.T) {
	q := newOpQueue(0)
	base := time.Now()

	q.push(newQueuedOp("bronze-hot", xquota.TierBronze, 99, base))
	q.push(newQueuedOp("gold-mid", xquota.TierGold, 50, base.Add(time.Millisecond)))
	q.push(newQueuedOp("silver-mid", xquota.TierSilver, 50, base.Add(2*time.Millisecond)))

	wantOrder := []string{"bronze-hot", "gold-mid", "silver-mid"}
	for i, want := range wantOrder {
		op := q.pop()
		if op == nil || op.TenantID != want {
			t.Fatalf("pop #%d = %v, want tenant %q", i, op, want)
		}
	}
	if q.pop() != nil {
		t.Error("empty queue should pop nil")
	}
}

func TestOpQueue_FIFOWithinPriority(t *testing.T) {
	q := newOpQueue(0)
	base := time.Now()

	// 同优先级按 submittedAt FIFO
	for i := 0; i < 5; i++ {
		op := newQueuedOp("t", xquota.TierSilver, 50, base.Add(time.Duration(i)*time.Millisecond))
		op.ID = string(rune('a' + i))
		q.push(op)
	}

	for i := 0; i < 5; i++ {
		op := q.pop()
		if op.ID != string(rune('a'+i)) {
			t.Fatalf("pop #%d = %q, want %q", i, op.ID, string(rune('a'+i)))
		}
	}
}

func TestOpQueue_HigherTierFirstAtEqualUrgency(t *testing.T) {
	q := newOpQueue(0)
	base := time.Now()

	// 层级单调偏好：同紧急度下高层级不晚于低层级出队
	q.push(newQueuedOp("bronze", xquota.TierBronze, 70, base))
	q.push(newQueuedOp("gold", xquota.TierGold, 70, base.Add(time.Millisecond)))

	if op := q.pop(); op.TenantID != "gold" {
		t.Errorf("first pop = %q, want gold", op.TenantID)
	}
	if op := q.pop(); op.TenantID != "bronze" {
		t.Errorf("second pop = %q, want bronze", op.TenantID)
	}
}

func TestOpQueue_Aging(t *testing.T) {
	q := newOpQueue(10 * time.Millisecond)
	now := time.Now()
	q.now = func() time.Time { return now }

	// Bronze 先提交很久，Gold 刚提交：老化让 Bronze 追上
	old := newQueuedOp("bronze-old", xquota.TierBronze, 50, now.Add(-time.Second))
	fresh := newQueuedOp("gold-fresh", xquota.TierGold, 50, now)
	q.push(fresh)
	q.push(old)

	// bronze: 50/1=50，老化 100 步 → -50；gold: 50/3=16
	if op := q.pop(); op.TenantID != "bronze-old" {
		t.Errorf("aged bronze should dequeue first, got %q", op.TenantID)
	}
}

func TestOpQueue_Drain(t *testing.T) {
	q := newOpQueue(0)
	base := time.Now()
	q.push(newQueuedOp("a", xquota.TierGold, 1, base))
	q.push(newQueuedOp("b", xquota.TierGold, 2, base))

	dropped := q.drain()
	if len(dropped) != 2 {
		t.Fatalf("drained %d, want 2", len(dropped))
	}
	if q.Len() != 0 {
		t.Error("queue should be empty after drain")
	}
}
