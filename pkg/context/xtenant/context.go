package xtenant

import (
	"context"
	"strings"
)

// ctxKey context key 类型，避免与其他包冲突。
type ctxKey struct{}

// WithTenantID 将租户 ID 注入 context。
// 注入前做 TrimSpace；纯空白值不注入，原样返回父 context。
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, tenantID)
}

// TenantID 从 context 获取租户 ID。
// 返回空字符串表示未设置。
func TenantID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return v
	}
	return ""
}

// RequireTenantID 从 context 获取租户 ID，不存在则返回 ErrNoTenantID。
// 适用于必须有租户信息的业务场景。
func RequireTenantID(ctx context.Context) (string, error) {
	id := TenantID(ctx)
	if id == "" {
		return "", ErrNoTenantID
	}
	return id, nil
}
