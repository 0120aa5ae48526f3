// Package xbreaker 提供上游调用的熔断保护。
//
// 基于 [sony/gobreaker/v2] 封装：连续失败达到阈值后进入 Open，
// 快速失败一段时间再经 HalfOpen 试探恢复。
//
// 熔断拦截（Open / 半开超限）统一映射为 xaderr 的 CIRCUIT_BREAKER
// 分类错误（503，retryable=true）——调用方按分类法处理，不感知
// gobreaker 的哨兵错误。注意分类重试策略不会在 worker 内重试
// CIRCUIT_BREAKER：熔断打开说明下游不可用，原地退避没有意义，
// retryable 位是给客户端侧退避的信号。
package xbreaker
