// Package xtenant 提供租户 ID 的 context 注入与提取。
//
// 流水线各层通过 context 传递租户维度：日志 enrich、缓存指纹、
// 配额键都以此为准。纯空白的租户 ID 视为空值。
package xtenant
