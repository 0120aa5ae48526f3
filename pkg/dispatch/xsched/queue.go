package xsched

import (
	"container/heap"
	"time"
)

// opQueue 按 (priority, submittedAt) 排序的最小堆。
// 本体不加锁，并发纪律由 Scheduler 的互斥量承担。
type opQueue struct {
	items []*Operation

	// agingK 出队老化步长。0 表示关闭。
	// 启用时有效优先级为 priority - age/agingK：排队越久的操作
	// 逐步向前，Bronze 在持续的 Gold 负载下也能推进。
	agingK time.Duration
	now    func() time.Time
}

func newOpQueue(agingK time.Duration) *opQueue {
	return &opQueue{agingK: agingK, now: time.Now}
}

// effective 计算比较时刻的有效优先级。
func (q *opQueue) effective(op *Operation) int {
	if q.agingK <= 0 {
		return op.Priority
	}
	return op.Priority - int(q.now().Sub(op.submittedAt)/q.agingK)
}

func (q *opQueue) Len() int { return len(q.items) }

func (q *opQueue) Less(i, j int) bool {
	pi, pj := q.effective(q.items[i]), q.effective(q.items[j])
	if pi != pj {
		return pi < pj
	}
	return q.items[i].submittedAt.Before(q.items[j].submittedAt)
}

func (q *opQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].index = i
	q.items[j].index = j
}

func (q *opQueue) Push(x any) {
	op := x.(*Operation)
	op.index = len(q.items)
	q.items = append(q.items, op)
}

func (q *opQueue) Pop() any {
	old := q.items
	n := len(old)
	op := old[n-1]
	old[n-1] = nil
	op.index = -1
	q.items = old[:n-1]
	return op
}

// push 入队。
func (q *opQueue) push(op *Operation) {
	heap.Push(q, op)
}

// pop 取出有效优先级最小的操作；空队列返回 nil。
//
// 启用老化时先 heap.Init 重建堆序——老化项随时间漂移，入队时刻的
// 堆序在出队时刻未必仍然成立。O(n) 的重建只发生在老化开启的出队路径，
// 默认关闭时保持 O(log n)。
func (q *opQueue) pop() *Operation {
	if len(q.items) == 0 {
		return nil
	}
	if q.agingK > 0 {
		heap.Init(q)
	}
	return heap.Pop(q).(*Operation)
}

// drain 清空队列并返回残留操作（Stop 超时后的丢弃路径）。
func (q *opQueue) drain() []*Operation {
	dropped := q.items
	q.items = nil
	return dropped
}
