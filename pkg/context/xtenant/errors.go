package xtenant

import "errors"

var (
	// ErrNoTenantID 表示 context 中没有租户 ID。
	ErrNoTenantID = errors.New("xtenant: no tenant id in context")
)
