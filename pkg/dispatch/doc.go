// Package dispatch 提供操作派发相关的子包。
//
// 子包列表：
//   - xsched: SLA 感知的优先级调度器（最小堆队列 + 固定 worker 池）
package dispatch
