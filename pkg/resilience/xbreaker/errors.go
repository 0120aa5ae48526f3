package xbreaker

import "errors"

var (
	// ErrNilBreaker 表示传入的 Breaker 为 nil。
	ErrNilBreaker = errors.New("xbreaker: breaker cannot be nil")

	// ErrNilFunc 表示操作函数为 nil。
	ErrNilFunc = errors.New("xbreaker: function cannot be nil")

	// ErrUnexpectedResult 表示底层返回了非预期类型的结果。
	ErrUnexpectedResult = errors.New("xbreaker: unexpected result type")
)
