// Package xretry 提供围绕上游调用的分类重试。
//
// 接口驱动：RetryPolicy 决定是否继续重试，BackoffPolicy 决定间隔；
// 底层使用 [avast/retry-go/v5] 执行。
//
// 与通用重试库的差别在于 ClassifiedRetryPolicy：它只重试分类法中
// 标记为可重试、且 Kind 属于 RATE_LIMIT / EXTERNAL_API 的错误。
// 上游返回的 QUOTA 与 TIMEOUT 不在 worker 内重试——配额恢复发生在
// 下一次准入，超时直接上抛给调用方。
//
// 默认退避为指数带抖动：初始 1s、上限 10s、倍率 2.0。
package xretry
