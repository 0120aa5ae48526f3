// Package xsched 提供 SLA 感知的优先级调度器。
//
// 固定大小的 worker 池从一个线程安全的最小堆队列中取操作执行。
// 优先级是层级权重与紧急度的派生整数：
//
//	base     = 100 - clamp(urgency, 0, 99)
//	priority = base / tierWeight      // gold:3 silver:2 bronze:1，整除，小者先行
//
// 同优先级内按提交时间 FIFO，保证层内公平。
//
// # 提交与等待
//
// Submit 入队永不阻塞，返回 *Handle；调用方只等待自己的 handle
// （Wait 带 context），一个逻辑请求不占据全局排空等待。
//
// # 生命周期
//
// Start 幂等（重复调用记警告日志）。Stop 先停止接收新提交并等待队列
// 排空（受 ctx 限时），超时后丢弃残留操作（其 handle 以
// ErrSchedulerStopped 完结）并等待 worker 退出。执行中的 panic 被
// 捕获计入 failed，绝不逃出 worker。
//
// # 饥饿
//
// 严格优先级在极限下允许饥饿；准入层的全局与租户预算使任何层级都
// 无法在一天内无限占据流水线。如需显式缓解，可用 WithAging 启用
// 出队老化。
package xsched
