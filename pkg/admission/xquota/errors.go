package xquota

import "errors"

var (
	// ErrNilClient 表示传入的 Redis 客户端为 nil。
	ErrNilClient = errors.New("xquota: redis client cannot be nil")

	// ErrInvalidUnits 表示单位数非正。
	ErrInvalidUnits = errors.New("xquota: units must be positive")

	// ErrInvalidQuota 表示配额值为负。
	ErrInvalidQuota = errors.New("xquota: quota must not be negative")
)
