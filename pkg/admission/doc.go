// Package admission 提供准入控制相关的子包。
//
// 子包列表：
//   - xquota: 全局与租户两级的配额治理（准入、扣费、层级、暂停）
//   - xlimit: 租户级的调度速率限制
//
// 设计原则：
//   - 共享存储（Redis）是唯一的权威账本，可被对等进程争用
//   - 存储故障一律 fail-open：节流手段不应成为可用性单点
package admission
