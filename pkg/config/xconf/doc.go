// Package xconf 提供流水线配置的加载与校验。
//
// 基于 [knadh/koanf/v2]：支持 YAML 与 JSON，可从文件路径或字节数据
// （K8s ConfigMap 等场景）加载。未出现的键保持默认值；Load 之后的
// 配置已通过 Validate。
//
// 时长字段接受 Go 时长字符串（"120s"、"30m"）。
package xconf
