package xquota

import "log/slog"

// DefaultBronzeReserve bronze 层级的默认保留水位（全局日额的 15%）。
const DefaultBronzeReserve = 0.15

// Option 定义 Governor 可选配置函数类型。
type Option func(*Governor)

// WithLogger 设置自定义日志记录器。
// 默认使用 slog.Default()。传入 nil 将被忽略，保持使用默认值。
func WithLogger(logger *slog.Logger) Option {
	return func(g *Governor) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithBronzeReserve 设置 bronze 保留水位（全局日额的比例）。
// 仅接受 [0, 1) 区间内的值，越界将被忽略。
// 传 0 表示关闭 bronze 节流。
func WithBronzeReserve(ratio float64) Option {
	return func(g *Governor) {
		if ratio >= 0 && ratio < 1 {
			g.bronzeReserve = ratio
		}
	}
}
