// Package config 提供配置相关的子包。
//
// 子包列表：
//   - xconf: 基于 koanf 的流水线配置加载与校验
package config
