package xsched

import (
	"log/slog"
	"time"
)

// Option 定义 Scheduler 可选配置函数类型。
type Option func(*options)

type options struct {
	logger *slog.Logger
	agingK time.Duration
}

func defaultOptions() options {
	return options{
		logger: slog.Default(),
	}
}

// WithLogger 设置自定义日志记录器。
// 默认使用 slog.Default()。传入 nil 将被忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithAging 启用出队老化：每排队 k 时长，有效优先级前移一步。
// k 取 30s 左右可让 Bronze 在持续 Gold 负载下约每 30 秒推进一档。
// 非正值将被忽略（保持关闭）。
//
// 注意：老化开启后出队路径需要重建堆序，复杂度从 O(log n) 升为 O(n)。
func WithAging(k time.Duration) Option {
	return func(o *options) {
		if k > 0 {
			o.agingK = k
		}
	}
}
