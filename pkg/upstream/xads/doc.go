// Package xads 定义上游广告 API 的注入能力。
//
// 传输本身不在本仓库范围内：Client 是一个注入的能力接口，生产实现
// 由装配方提供，本包只带一个确定性的 Mock 供开发与测试。
//
// 上游错误以 UpstreamError 表达，其 ErrorCode 可被 xaderr.MapUpstream
// 读取并映射到分类法。
package xads
