package xsched

import "errors"

var (
	// ErrInvalidWorkers 表示 worker 数量无效。
	ErrInvalidWorkers = errors.New("xsched: invalid worker count")

	// ErrNilTask 表示任务闭包为 nil。
	ErrNilTask = errors.New("xsched: task cannot be nil")

	// ErrSchedulerStopped 表示调度器已关停，无法提交；
	// 关停时被丢弃的排队操作也以此错误完结其 handle。
	ErrSchedulerStopped = errors.New("xsched: scheduler is stopped")
)
