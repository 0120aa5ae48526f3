// Package xquota 提供面向共享存储的配额治理（准入与记账）。
//
// 全局与租户两级的单位预算存放在 Redis 中，可能被对等进程并发争用。
// Governor 回答准入查询（CanRun）、在成功后扣费（Charge）、
// 并管理租户的 SLA 层级与暂停状态。
//
// # 键模式
//
//	quota:global_daily                   每日重置值
//	quota:global_remaining               全局实时余额
//	quota:client:{tenant}:remaining      租户实时余额
//	client:{tenant}:tier                 gold / silver / bronze
//	client:{tenant}:paused               "1" 表示暂停，缺省未暂停
//
// # 一致性模型
//
// 准入与扣费不是一个原子操作：并发准入可能在仅剩一份预算时双双通过，
// 第二笔扣费会把余额短暂打到负值。这一超发由 bronze 保留水位吸收，
// 且单轮上限为 workers × max_cost，下次全局重置时归正。
//
// 存储故障时准入 fail-open：瞬时的存储抖动不应让整个车队停摆，
// 随后的 Charge 自然不会扣成功，存储恢复后下一次准入即反映真实余额。
package xquota
