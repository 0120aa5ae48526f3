// Package upstream 提供上游能力相关的子包。
//
// 子包列表：
//   - xads: 上游广告 API 的注入能力接口与 Mock 实现
package upstream
