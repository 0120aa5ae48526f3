package xgate

import (
	"strings"
	"time"

	"github.com/omeyang/adkit/pkg/upstream/xads"
)

// DefaultPageSize 读请求的默认分页大小。
const DefaultPageSize = 1000

// defaultServiceType 读请求的默认服务类型（决定共享层 TTL）。
const defaultServiceType = "reporting"

// SearchRequest 读请求。
type SearchRequest struct {
	// TenantID 租户标识。为空时回退从 context 提取。
	TenantID string

	// Query 上游查询语句。
	Query string

	// PageSize 分页大小，非正值取 DefaultPageSize。
	PageSize int

	// DisableCache 跳过缓存查与缓存写。零值即启用缓存。
	DisableCache bool

	// ServiceType 服务类型标签，决定共享层 TTL；空值取 reporting。
	ServiceType string

	// TTLOverride 覆盖服务类型表的共享层 TTL。0 表示查表。
	TTLOverride time.Duration
}

// normalize 填充缺省字段并返回规范化副本。
func (r SearchRequest) normalize() SearchRequest {
	r.TenantID = strings.TrimSpace(r.TenantID)
	if r.PageSize <= 0 {
		r.PageSize = DefaultPageSize
	}
	if r.ServiceType == "" {
		r.ServiceType = defaultServiceType
	}
	return r
}

// MutateRequest 写请求。
type MutateRequest struct {
	// TenantID 租户标识。为空时回退从 context 提取。
	TenantID string

	// Operations 变更操作列表，不能为空。
	Operations []xads.MutateOperation

	// OperationType 变更对象类型标签（campaign、ad_group、keyword 等），
	// 仅用于日志。
	OperationType string

	// ValidateOnly 为真时只校验不落地。
	ValidateOnly bool
}
