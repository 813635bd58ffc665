package xdecider

import "errors"

// 决策器创建相关的错误。
var (
	// ErrNilOption 表示传入了 nil 选项。
	ErrNilOption = errors.New("xdecider: option must not be nil")
)
