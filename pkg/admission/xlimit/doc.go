// Package xlimit 提供租户级的调度速率限制。
//
// 基于 Redis 的 GCRA 限流（go-redis/redis_rate），每租户一个限流键，
// 作为配额准入之外的第二道节流：配额约束一天的总量，速率限制约束
// 瞬时的提交频率。
//
// 拒绝以 xaderr 的 RATE_LIMIT 分类错误表达（附 retry_after 秒数）；
// 存储故障 fail-open，与 xquota 的准入策略一致。
package xlimit
