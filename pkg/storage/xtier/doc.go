// Package xtier 提供两层读缓存：进程内 LRU + 共享 Redis TTL 存储。
//
// 键是请求的规范指纹（Fingerprint）：租户、操作名与排序后的参数拼接，
// 语义相同的两次请求必然落在同一个键上。值是一次读操作的不透明结果
// （JSON 字节）。
//
// # 读路径
//
// 先查本地 LRU；未命中查共享层，命中则先回填本地（promotion）再返回
// 原始字节（反序列化由调用方负责）；两层都未命中返回 absent。
//
// # 写路径
//
// 先写本地，再带 TTL 写共享层。共享层错误只记日志不失败调用——
// 缓存是尽力而为的加速器，不是正确性依赖。
//
// # 一致性
//
// 本地条目没有显式 TTL，按最近使用序淘汰，可能在共享副本过期后继续
// 存活。对读多的报表型查询这是接受的权衡；需要更强一致的实现可用
// WithLocalTTL 给本地层挂一个镜像共享 TTL 的软过期戳。
package xtier
