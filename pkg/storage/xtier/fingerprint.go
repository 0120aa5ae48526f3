package xtier

import (
	"fmt"
	"sort"
	"strings"
)

// Fingerprint 生成规范缓存键：client:{tenant}:{op}:k=v:...
//
// 参数按键名排序后拼接——语义相同的请求必须产生相同的键。
// 无参数时不带尾部冒号。
func Fingerprint(tenantID, op string, params map[string]string) string {
	base := fmt.Sprintf("client:%s:%s", tenantID, op)
	if len(params) == 0 {
		return base
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(base)
	for _, k := range keys {
		b.WriteByte(':')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}
	return b.String()
}
