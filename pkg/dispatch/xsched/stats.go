package xsched

// Stats 调度器统计快照。
// 各计数器独立采样，瞬时读数之间允许轻微不一致。
type Stats struct {
	Submitted uint64            `json:"submitted"`
	Completed uint64            `json:"completed"`
	Failed    uint64            `json:"failed"`
	Dropped   uint64            `json:"dropped"`
	Pending   uint64            `json:"pending"`
	ByTier    map[string]uint64 `json:"by_tier"`
	QueueLen  int               `json:"queue_size"`
	Workers   int               `json:"workers"`
	Alive     int               `json:"workers_alive"`
	Running   bool              `json:"running"`
}

// Stats 返回统计快照。
func (s *Scheduler) Stats() Stats {
	submitted := s.submitted.Load()
	completed := s.completed.Load()
	failed := s.failed.Load()
	dropped := s.dropped.Load()

	var pending uint64
	if done := completed + failed + dropped; submitted > done {
		pending = submitted - done
	}

	byTier := make(map[string]uint64, len(s.byTier))
	for tier, counter := range s.byTier {
		byTier[string(tier)] = counter.Load()
	}

	return Stats{
		Submitted: submitted,
		Completed: completed,
		Failed:    failed,
		Dropped:   dropped,
		Pending:   pending,
		ByTier:    byTier,
		QueueLen:  s.QueueLen(),
		Workers:   s.workers,
		Alive:     int(s.workersAlive.Load()),
		Running:   s.IsRunning(),
	}
}
