package xads

import (
	"context"
	"fmt"

	"github.com/omeyang/adkit/pkg/core/xaderr"
)

// Record 一条查询结果，结构由上游查询决定。
type Record map[string]any

// MutateOperation 一个变更操作的载荷，结构由上游服务决定。
type MutateOperation map[string]any

// MutateResult 单个变更操作的结果。
type MutateResult struct {
	ResourceName string `json:"resource_name"`
	OperationID  string `json:"operation_id"`
}

// MutateResponse 变更调用的响应。
type MutateResponse struct {
	Results        []MutateResult `json:"results"`
	PartialFailure *string        `json:"partial_failure_error,omitempty"`
}

// Client 上游 API 能力接口。
type Client interface {
	// Search 执行查询，返回结果记录。
	Search(ctx context.Context, customerID, query string, pageSize int) ([]Record, error)

	// Mutate 执行变更。validateOnly 为真时只校验不落地。
	Mutate(ctx context.Context, customerID string, operations []MutateOperation, validateOnly bool) (*MutateResponse, error)
}

// UpstreamError 上游返回的错误，携带可供映射层读取的错误码。
type UpstreamError struct {
	Code    string
	Message string
}

// NewUpstreamError 创建上游错误。
func NewUpstreamError(code, message string) *UpstreamError {
	return &UpstreamError{Code: code, Message: message}
}

// Error 实现 error 接口。
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %s", e.Code, e.Message)
}

// ErrorCode 实现 xaderr.UpstreamCoder 接口。
func (e *UpstreamError) ErrorCode() string {
	return e.Code
}

// 编译期接口检查
var _ xaderr.UpstreamCoder = (*UpstreamError)(nil)
