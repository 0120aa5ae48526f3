// Package resilience 提供容错相关的子包。
//
// 子包列表：
//   - xretry: 按错误分类的重试（RATE_LIMIT / 可重试 EXTERNAL_API）
//   - xbreaker: 上游调用熔断，拦截映射为 CIRCUIT_BREAKER 分类错误
//
// 两者都以 xaderr 分类法为唯一的错误判定依据，不解析上游错误字符串。
package resilience
