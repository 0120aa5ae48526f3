package xconf

import "errors"

var (
	// ErrEmptyPath 表示配置文件路径为空。
	ErrEmptyPath = errors.New("xconf: path cannot be empty")

	// ErrUnsupportedFormat 表示不支持的配置格式。
	ErrUnsupportedFormat = errors.New("xconf: unsupported format")

	// ErrLoadFailed 表示配置数据读取或解析失败。
	ErrLoadFailed = errors.New("xconf: load failed")

	// ErrUnmarshalFailed 表示配置反序列化失败。
	ErrUnmarshalFailed = errors.New("xconf: unmarshal failed")

	// ErrInvalidConfig 表示配置值校验失败。
	ErrInvalidConfig = errors.New("xconf: invalid config")
)
