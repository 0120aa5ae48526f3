// Package xgate 是按请求调用的操作流水线编排器。
//
// 读路径：缓存查（命中短路）→ 层级解析 → 暂停检查 →（可选速率限制）→
// 配额准入 → 提交调度 → 带超时等待 handle → 成功扣费 → 缓存写。
// 写路径跳过所有缓存交互，成本为 COST_WRITE × 操作数，默认紧急度更高。
//
// worker 内的上游调用由分类重试（最多 3 次、指数退避 1s..10s、仅
// RATE_LIMIT 与可重试 EXTERNAL_API）与熔断器包裹。流水线从不吞错误，
// 两个例外：扣费失败（工作已成功，只记日志）与缓存写失败（缓存是
// 尽力而为，只记日志）。
//
// # 超时语义
//
// 等待超时返回 TIMEOUT 分类错误，但已调度的工作不被强制中止——
// 它会执行完毕，成功后的扣费照常发生。
//
// # 退款策略
//
// 失败的操作不退款：许多失败（超时、限流）同样消耗了上游容量。
// 上游返回 QUOTA 时是否应退还本地已扣单位仍是开放问题，当前沿用
// 不退款策略；Governor.Refund 保留给显式的运维决策。
package xgate
