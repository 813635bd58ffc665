package xslog

import "context"

// traceIDKey context key 的私有类型，避免与其他包冲突。
type traceIDKey struct{}

// WithTraceID 将 trace ID 写入 context
//
// 空 traceID 不写入，返回原 context。
func WithTraceID(ctx context.Context, traceID string) context.Context {
	if traceID == "" {
		return ctx
	}
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFrom 从 context 读取 trace ID，不存在时返回空字符串
//
// nil ctx 安全退化为空字符串，不 panic。
func TraceIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(traceIDKey{}).(string)
	return v
}
