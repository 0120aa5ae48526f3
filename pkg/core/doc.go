// Package core 提供被所有层消费的基础子包。
//
// 子包列表：
//   - xaderr: 封闭错误分类法（稳定 code、HTTP 状态、retryable 位）
package core
