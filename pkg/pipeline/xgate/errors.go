package xgate

import "errors"

var (
	// ErrNilUpstream 表示上游能力为 nil。
	ErrNilUpstream = errors.New("xgate: upstream client cannot be nil")

	// ErrNilGovernor 表示配额治理器为 nil。
	ErrNilGovernor = errors.New("xgate: quota governor cannot be nil")

	// ErrNilScheduler 表示调度器为 nil。
	ErrNilScheduler = errors.New("xgate: scheduler cannot be nil")
)
