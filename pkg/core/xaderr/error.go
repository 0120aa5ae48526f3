package xaderr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 错误分类。
type Kind string

// 错误分类的封闭集合。
const (
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindQuota          Kind = "quota"
	KindRateLimit      Kind = "rate_limit"
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindTimeout        Kind = "timeout"
	KindCircuitBreaker Kind = "circuit_breaker"
	KindExternalAPI    Kind = "external_api"
	KindInternal       Kind = "internal"
)

// Error 分类错误。
//
// 携带稳定 code、HTTP 状态与 retryable 位，供重试层与 HTTP 表面消费。
// 必须通过本包构造器创建；Details 惰性分配。
type Error struct {
	Kind       Kind
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any

	retryable bool
	cause     error
}

// Error 实现 error 接口。
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap 返回底层原因（可能为 nil）。
func (e *Error) Unwrap() error {
	return e.cause
}

// Retryable 实现 xretry.RetryableError 接口。
func (e *Error) Retryable() bool {
	return e.retryable
}

// WithDetail 附加结构化细节并返回自身，便于链式调用。
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any, 2)
	}
	e.Details[key] = value
	return e
}

// WithCause 附加底层原因并返回自身。
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// =============================================================================
// 构造器
// =============================================================================

// NewAuthentication 认证失败（401，不可重试）。
func NewAuthentication(message string) *Error {
	if message == "" {
		message = "authentication failed"
	}
	return &Error{
		Kind:       KindAuthentication,
		Code:       "AUTH_FAILED",
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewAuthorization 权限不足（403，不可重试）。
func NewAuthorization(message string) *Error {
	if message == "" {
		message = "permission denied"
	}
	return &Error{
		Kind:       KindAuthorization,
		Code:       "PERMISSION_DENIED",
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewQuotaExceeded 配额不足（429，可重试）。
// tenantID 非空时记入 Details["client_id"]。
func NewQuotaExceeded(message, tenantID string) *Error {
	if message == "" {
		message = "quota exceeded"
	}
	e := &Error{
		Kind:       KindQuota,
		Code:       "QUOTA_EXCEEDED",
		Message:    message,
		HTTPStatus: http.StatusTooManyRequests,
		retryable:  true,
	}
	if tenantID != "" {
		e.WithDetail("client_id", tenantID)
	}
	return e
}

// NewRateLimit 速率受限（429，可重试）。
// retryAfter 为秒数，大于 0 时记入 Details["retry_after"]。
func NewRateLimit(message string, retryAfter int) *Error {
	if message == "" {
		message = "rate limit exceeded"
	}
	e := &Error{
		Kind:       KindRateLimit,
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    message,
		HTTPStatus: http.StatusTooManyRequests,
		retryable:  true,
	}
	if retryAfter > 0 {
		e.WithDetail("retry_after", retryAfter)
	}
	return e
}

// NewValidation 请求校验失败（400，不可重试）。
func NewValidation(message string) *Error {
	if message == "" {
		message = "validation failed"
	}
	return &Error{
		Kind:       KindValidation,
		Code:       "VALIDATION_ERROR",
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFound 资源不存在（404，不可重试）。
func NewNotFound(message, resource string) *Error {
	if message == "" {
		message = "resource not found"
	}
	e := &Error{
		Kind:       KindNotFound,
		Code:       "NOT_FOUND",
		Message:    message,
		HTTPStatus: http.StatusNotFound,
	}
	if resource != "" {
		e.WithDetail("resource", resource)
	}
	return e
}

// NewConflict 资源冲突（409，不可重试）。
func NewConflict(message string) *Error {
	if message == "" {
		message = "resource conflict"
	}
	return &Error{
		Kind:       KindConflict,
		Code:       "CONFLICT",
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewTimeout 操作超时（504，可重试）。
// timeoutSeconds 大于 0 时记入 Details["timeout_seconds"]。
func NewTimeout(message string, timeoutSeconds int) *Error {
	if message == "" {
		message = "operation timed out"
	}
	e := &Error{
		Kind:       KindTimeout,
		Code:       "TIMEOUT",
		Message:    message,
		HTTPStatus: http.StatusGatewayTimeout,
		retryable:  true,
	}
	if timeoutSeconds > 0 {
		e.WithDetail("timeout_seconds", timeoutSeconds)
	}
	return e
}

// NewCircuitBreaker 熔断器打开（503，可重试）。
func NewCircuitBreaker(message string) *Error {
	if message == "" {
		message = "service temporarily unavailable (circuit breaker open)"
	}
	return &Error{
		Kind:       KindCircuitBreaker,
		Code:       "CIRCUIT_BREAKER_OPEN",
		Message:    message,
		HTTPStatus: http.StatusServiceUnavailable,
		retryable:  true,
	}
}

// NewExternal 上游 API 错误（502）。
// retryable 由调用方根据上游信号决定；upstreamCode 非空时记入
// Details["upstream_code"]。
func NewExternal(message, upstreamCode string, retryable bool) *Error {
	if message == "" {
		message = "external api error"
	}
	e := &Error{
		Kind:       KindExternalAPI,
		Code:       "EXTERNAL_API_ERROR",
		Message:    message,
		HTTPStatus: http.StatusBadGateway,
		retryable:  retryable,
	}
	if upstreamCode != "" {
		e.WithDetail("upstream_code", upstreamCode)
	}
	return e
}

// NewInternal 内部错误（500，不可重试）。
func NewInternal(message string) *Error {
	if message == "" {
		message = "internal server error"
	}
	return &Error{
		Kind:       KindInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// =============================================================================
// 检查函数
// =============================================================================

// FromError 从错误链中提取 *Error。
func FromError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind 检查错误链中是否存在指定分类的 *Error。
func IsKind(err error, kind Kind) bool {
	e, ok := FromError(err)
	return ok && e.Kind == kind
}

// IsRetryable 检查错误是否可重试。
// 非分类错误一律视为不可重试——分类法之外的错误没有重试语义。
func IsRetryable(err error) bool {
	e, ok := FromError(err)
	return ok && e.retryable
}

// HTTPStatusOf 返回错误对应的 HTTP 状态码。
// 非分类错误返回 500。
func HTTPStatusOf(err error) int {
	if e, ok := FromError(err); ok {
		return e.HTTPStatus
	}
	return http.StatusInternalServerError
}
