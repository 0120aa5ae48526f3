// Package storage 提供数据存储相关的子包。
//
// 子包列表：
//   - xtier: 两层读缓存（进程内 LRU + 共享 Redis TTL 存储）
//
// 设计原则：
//   - 缓存是尽力而为的加速器，不是正确性依赖
//   - 共享层故障降级为未命中/只记日志，不影响调用方
package storage
