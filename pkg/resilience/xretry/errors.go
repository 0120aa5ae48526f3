package xretry

import "errors"

var (
	// ErrNilRetryer 表示 Retryer 为 nil。
	ErrNilRetryer = errors.New("xretry: retryer cannot be nil")

	// ErrNilContext 表示 context 参数为 nil。
	ErrNilContext = errors.New("xretry: context cannot be nil")

	// ErrNilFunc 表示操作函数为 nil。
	ErrNilFunc = errors.New("xretry: function cannot be nil")
)
