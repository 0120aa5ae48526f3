// Package pipeline 提供请求编排相关的子包。
//
// 子包列表：
//   - xgate: 操作流水线（缓存 → 准入 → 调度 → 重试 → 扣费 → 缓存写）
package pipeline
