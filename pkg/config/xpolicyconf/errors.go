package xpolicyconf

import "errors"

// 策略加载和解析相关错误。
var (
	// ErrEmptyPath 表示策略文件路径为空。
	ErrEmptyPath = errors.New("xpolicyconf: empty policy path")

	// ErrUnsupportedFormat 表示不支持的策略文件格式。
	ErrUnsupportedFormat = errors.New("xpolicyconf: unsupported policy format")

	// ErrLoadFailed 表示策略文件读取失败。
	ErrLoadFailed = errors.New("xpolicyconf: failed to load policy")

	// ErrParseFailed 表示策略文件解析失败。
	ErrParseFailed = errors.New("xpolicyconf: failed to parse policy")

	// ErrUnmarshalFailed 表示策略反序列化失败。
	ErrUnmarshalFailed = errors.New("xpolicyconf: failed to unmarshal policy")

	// ErrNilDecider 表示 Watch 传入的决策器为 nil。
	ErrNilDecider = errors.New("xpolicyconf: decider must not be nil")
)
