package xevent

import "errors"

// 事件校验相关的错误。
var (
	// ErrMalformedEvent 表示事件缺少决策必需的字段。
	// 所有校验错误都包装此哨兵，便于调用方统一识别 fail-open 场景。
	ErrMalformedEvent = errors.New("xevent: malformed event")

	// ErrMissingTraceID 表示事件缺少 trace ID。
	ErrMissingTraceID = errors.New("xevent: missing trace id")

	// ErrInvalidSeverity 表示事件的严重级别不在合法范围内。
	ErrInvalidSeverity = errors.New("xevent: invalid severity")
)
