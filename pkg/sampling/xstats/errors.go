package xstats

import "errors"

// OTel 桥接相关的错误。
var (
	// ErrNilCollector 表示注册时传入的 Collector 为 nil。
	ErrNilCollector = errors.New("xstats: collector must not be nil")
)
