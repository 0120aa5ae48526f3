// Package context 提供上下文传递相关的子包。
//
// 子包列表：
//   - xtenant: 租户 ID 的 context 注入/提取
//
// 设计原则：
//   - 所有请求级信息通过 context.Context 传递，不使用全局变量
package context
