package xtier

import "time"

// 服务类型 → 共享层 TTL 的静态映射。
var ttlByService = map[string]time.Duration{
	"reporting": 5 * time.Minute,
	"campaign":  30 * time.Minute,
	"keyword":   15 * time.Minute,
	"budget":    time.Hour,
	"customer":  24 * time.Hour,
	"default":   5 * time.Minute,
}

// ServiceTTL 返回服务类型对应的共享层 TTL。
// 未收录的服务类型使用 default 条目。
func ServiceTTL(serviceType string) time.Duration {
	if ttl, ok := ttlByService[serviceType]; ok {
		return ttl
	}
	return ttlByService["default"]
}
