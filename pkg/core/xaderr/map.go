package xaderr

import "errors"

// UpstreamCoder 上游错误的错误码读取接口。
// 上游传输层的错误类型实现此接口即可参与 MapUpstream 映射。
type UpstreamCoder interface {
	error
	ErrorCode() string
}

// 上游错误码 → 分类的映射表。
// 未收录的错误码归入 KindExternalAPI 且不可重试。
var upstreamKindMap = map[string]Kind{
	"AUTHENTICATION_ERROR": KindAuthentication,
	"AUTHORIZATION_ERROR":  KindAuthorization,
	"QUOTA_ERROR":          KindQuota,
	"RESOURCE_EXHAUSTED":   KindQuota,
	"RATE_LIMIT_ERROR":     KindRateLimit,
	"INVALID_ARGUMENT":     KindValidation,
	"NOT_FOUND":            KindNotFound,
	"ALREADY_EXISTS":       KindConflict,
	"DEADLINE_EXCEEDED":    KindTimeout,
	"INTERNAL_ERROR":       KindInternal,
	"UNAVAILABLE":          KindExternalAPI,
}

// 上游信号可重试的错误码白名单。
// UNAVAILABLE / DEADLINE_EXCEEDED 映射到的 EXTERNAL_API / TIMEOUT
// 之外，QUOTA 与 RATE_LIMIT 的可重试性由构造器自带。
var upstreamRetryableCodes = map[string]bool{
	"QUOTA_ERROR":        true,
	"RESOURCE_EXHAUSTED": true,
	"RATE_LIMIT_ERROR":   true,
	"DEADLINE_EXCEEDED":  true,
	"UNAVAILABLE":        true,
}

// MapUpstream 将上游错误映射为分类错误。
//
// 从错误链中提取 UpstreamCoder 读取错误码并查表；错误链中没有
// UpstreamCoder、或错误码未收录时，归入 KindExternalAPI 且不可重试。
// 已经是 *Error 的错误原样返回，避免二次包装丢失语义。
// nil 返回 nil。
func MapUpstream(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := FromError(err); ok {
		return e
	}

	code := "UNKNOWN"
	var uc UpstreamCoder
	if errors.As(err, &uc) {
		code = uc.ErrorCode()
	}

	kind, known := upstreamKindMap[code]
	if !known {
		return NewExternal(err.Error(), code, false).WithCause(err)
	}

	switch kind {
	case KindAuthentication:
		return NewAuthentication(err.Error()).WithCause(err)
	case KindAuthorization:
		return NewAuthorization(err.Error()).WithCause(err)
	case KindQuota:
		return NewQuotaExceeded(err.Error(), "").WithCause(err)
	case KindRateLimit:
		return NewRateLimit(err.Error(), 0).WithCause(err)
	case KindValidation:
		return NewValidation(err.Error()).WithCause(err)
	case KindNotFound:
		return NewNotFound(err.Error(), "").WithCause(err)
	case KindConflict:
		return NewConflict(err.Error()).WithCause(err)
	case KindTimeout:
		return NewTimeout(err.Error(), 0).WithCause(err)
	case KindInternal:
		return NewInternal(err.Error()).WithCause(err)
	default:
		return NewExternal(err.Error(), code, upstreamRetryableCodes[code]).WithCause(err)
	}
}
