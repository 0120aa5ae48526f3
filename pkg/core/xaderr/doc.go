// Package xaderr 提供面向上游广告 API 的封闭错误分类法。
//
// 分类法是一个封闭集合：11 种 Kind，每种携带稳定的 code 字符串、
// HTTP 状态码和 retryable 位。重试层与 HTTP 表面只消费 retryable 位
// 和 HTTP 状态，不解释上游错误字符串。
//
// # 核心能力
//
//   - 每种 Kind 一个构造器（NewQuotaExceeded、NewRateLimit 等）
//   - MapUpstream 将上游错误码映射为分类错误，未知码归入
//     KindExternalAPI 且不可重试
//   - Error 实现 error、Unwrap 与 Retryable() bool，
//     与 xretry 的 RetryableError 契约直接互通
//
// # 使用场景
//
// 准入、调度、缓存、重试各层之间的错误传递统一使用 *Error。
// 判断分类用 IsKind / FromError，判断可重试性用 IsRetryable。
package xaderr
