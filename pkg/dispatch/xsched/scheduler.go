package xsched

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/omeyang/adkit/pkg/admission/xquota"
	"github.com/omeyang/adkit/pkg/core/xaderr"
)

const maxWorkers = 1 << 16 // 65536

// drainPollInterval Stop 排空等待的轮询间隔。
const drainPollInterval = 10 * time.Millisecond

// Scheduler SLA 感知的优先级调度器。
// 必须通过 New 创建；Start 后方可消费，Submit 在 Start 前也可入队。
type Scheduler struct {
	workers int
	logger  *slog.Logger

	mu       sync.Mutex
	cond     *sync.Cond
	queue    *opQueue
	running  bool
	stopping bool
	wg       sync.WaitGroup

	workersAlive atomic.Int64

	submitted atomic.Uint64
	completed atomic.Uint64
	failed    atomic.Uint64
	dropped   atomic.Uint64
	byTier    map[xquota.Tier]*atomic.Uint64
}

// New 创建调度器。
// workers 必须在 [1, 65536] 范围内，否则返回 ErrInvalidWorkers。
func New(workers int, opts ...Option) (*Scheduler, error) {
	if workers < 1 || workers > maxWorkers {
		return nil, fmt.Errorf("%w: got %d, must be in [1, %d]", ErrInvalidWorkers, workers, maxWorkers)
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	s := &Scheduler{
		workers: workers,
		logger:  o.logger,
		queue:   newOpQueue(o.agingK),
		byTier: map[xquota.Tier]*atomic.Uint64{
			xquota.TierGold:   {},
			xquota.TierSilver: {},
			xquota.TierBronze: {},
		},
	}
	s.cond = sync.NewCond(&s.mu)
	return s, nil
}

// Start 启动 worker。幂等：重复调用是带警告日志的空操作。
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.logger.Warn("xsched: scheduler already running")
		return
	}
	s.running = true
	s.stopping = false

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		s.workersAlive.Add(1)
		go s.worker(i)
	}
	s.logger.Info("xsched: started workers", slog.Int("workers", s.workers))
}

// Submit 提交操作。入队永不阻塞；返回的 Handle 供调用方等待完成。
// urgency 钳制到 [0, 99]；调度器关停期间返回 ErrSchedulerStopped。
func (s *Scheduler) Submit(tenantID string, tier xquota.Tier, urgency int, costUnits int64, task Task) (*Handle, error) {
	if task == nil {
		return nil, ErrNilTask
	}

	priority, clamped := computePriority(urgency, tier)
	op := &Operation{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		Tier:        tier,
		Urgency:     clamped,
		CostUnits:   costUnits,
		Priority:    priority,
		submittedAt: time.Now(),
		task:        task,
		handle:      newHandle(),
	}

	s.mu.Lock()
	if s.stopping {
		s.mu.Unlock()
		return nil, ErrSchedulerStopped
	}
	s.queue.push(op)
	s.cond.Signal()
	s.mu.Unlock()

	s.submitted.Add(1)
	if counter, ok := s.byTier[tier]; ok {
		counter.Add(1)
	} else {
		s.byTier[xquota.TierBronze].Add(1)
	}

	s.logger.Debug("xsched: operation submitted",
		slog.String("op_id", op.ID),
		slog.String("tenant_id", tenantID),
		slog.String("tier", string(tier)),
		slog.Int("urgency", clamped),
		slog.Int("priority", priority))
	return op.handle, nil
}

// worker 工作协程：出队、执行、完结 handle，直到关停且队列耗尽。
func (s *Scheduler) worker(id int) {
	defer s.wg.Done()
	defer s.workersAlive.Add(-1)

	for {
		op := s.dequeue()
		if op == nil {
			s.logger.Debug("xsched: worker exiting", slog.Int("worker", id))
			return
		}
		s.execute(id, op)
	}
}

// dequeue 阻塞取出下一个操作；关停且队列耗尽时返回 nil。
func (s *Scheduler) dequeue() *Operation {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.queue.Len() == 0 && !s.stopping {
		s.cond.Wait()
	}
	return s.queue.pop()
}

// execute 执行单个操作。panic 被捕获计入 failed 并记日志，
// 绝不逃出 worker；handle 以 INTERNAL 分类错误完结。
func (s *Scheduler) execute(workerID int, op *Operation) {
	defer func() {
		if r := recover(); r != nil {
			s.failed.Add(1)
			s.logger.Error("xsched: worker panic recovered",
				slog.Int("worker", workerID),
				slog.String("op_id", op.ID),
				slog.String("tenant_id", op.TenantID),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
			op.handle.complete(nil, xaderr.NewInternal(fmt.Sprintf("operation panicked: %v", r)))
		}
	}()

	result, err := op.task()
	if err != nil {
		s.failed.Add(1)
		s.logger.Error("xsched: operation failed",
			slog.Int("worker", workerID),
			slog.String("op_id", op.ID),
			slog.String("tenant_id", op.TenantID),
			slog.Any("error", err))
	} else {
		s.completed.Add(1)
	}
	op.handle.complete(result, err)
}

// Stop 优雅关停。
//
// 先停止接收新提交并等待队列排空（受 ctx 限时）；排空超时后丢弃
// 残留操作——其 handle 以 ErrSchedulerStopped 完结，提交方不会悬挂——
// 随后唤醒并等待全部 worker 退出。返回 ctx 的错误（如有）。
//
// 注意：执行中的任务不会被强制中止，worker 等它结束后才退出；
// 任务不应无限阻塞。
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.stopping = true
	s.mu.Unlock()

	// 排空等待：队列清空或 ctx 到期。
	drainErr := s.waitDrained(ctx)
	if drainErr != nil {
		s.logger.Warn("xsched: stop drain window expired, dropping queued operations",
			slog.Any("error", drainErr))
	}

	s.mu.Lock()
	dropped := s.queue.drain()
	s.running = false
	s.cond.Broadcast()
	s.mu.Unlock()

	for _, op := range dropped {
		s.dropped.Add(1)
		op.handle.complete(nil, ErrSchedulerStopped)
	}

	s.wg.Wait()
	s.logger.Info("xsched: stopped", slog.Int("dropped", len(dropped)))
	return drainErr
}

// waitDrained 轮询等待队列清空。
// sync.Cond 没有带超时的等待，轮询间隔取 10ms，对关停路径足够。
func (s *Scheduler) waitDrained(ctx context.Context) error {
	ticker := time.NewTicker(drainPollInterval)
	defer ticker.Stop()

	for {
		s.mu.Lock()
		empty := s.queue.Len() == 0
		s.mu.Unlock()
		if empty {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// QueueLen 返回当前排队中的操作数。
func (s *Scheduler) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// IsRunning 返回调度器是否在运行。
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// HealthCheck 返回调度器健康状态：运行中且全部 worker 存活。
func (s *Scheduler) HealthCheck() bool {
	return s.IsRunning() && s.workersAlive.Load() == int64(s.workers)
}
