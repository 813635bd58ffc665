package xslog

import "errors"

// Handler 与轮转输出创建相关的错误。
var (
	// ErrNilHandler 表示底层 handler 为 nil。
	ErrNilHandler = errors.New("xslog: base handler must not be nil")

	// ErrNilDecider 表示决策器为 nil。
	ErrNilDecider = errors.New("xslog: decider must not be nil")

	// ErrNilOption 表示传入了 nil 选项。
	ErrNilOption = errors.New("xslog: option must not be nil")

	// ErrEmptyFilename 表示轮转输出的文件名为空。
	ErrEmptyFilename = errors.New("xslog: empty filename")
)
