package xslog

import (
	"context"
	"log/slog"

	"github.com/omeyang/xsample/pkg/sampling/xdecider"
	"github.com/omeyang/xsample/pkg/sampling/xevent"
)

// TraceIDFunc 从 context 提取 trace ID 的函数
//
// 返回空字符串表示 context 中没有 trace ID，此时事件视为畸形，
// 决策器 fail open 保留。
type TraceIDFunc func(ctx context.Context) string

// SamplingHandler 在底层 handler 前插入采样决策的 slog.Handler
//
// 装饰模式实现：Handle() 先咨询决策器，DROP 时直接返回 nil，
// 底层 handler 的格式化与序列化（包括 slog.LogValuer 延迟求值）
// 都不会发生。
type SamplingHandler struct {
	base      slog.Handler
	decider   *xdecider.Decider
	traceFunc TraceIDFunc
	tagKeys   []string
}

// HandlerOption 配置 SamplingHandler 的可选参数。
type HandlerOption func(*SamplingHandler)

// WithTraceIDFunc 设置自定义 trace ID 提取函数
//
// 用于对接现有追踪体系，例如从 OpenTelemetry span context 提取。
// 默认使用 TraceIDFrom。nil 会被忽略。
func WithTraceIDFunc(fn TraceIDFunc) HandlerOption {
	return func(h *SamplingHandler) {
		if fn != nil {
			h.traceFunc = fn
		}
	}
}

// WithTagKeys 设置参与内容规则匹配的属性键
//
// 记录中键名在此列表内且值为字符串的属性会作为事件标签传给决策器。
// 默认为空：不提取标签，决策只依赖级别与 trace ID——标签提取
// 有每条日志的遍历开销，只在策略确实配置了内容规则时开启。
//
// 注意：只提取记录自身携带的属性，通过 WithAttrs 预绑定的属性
// 不参与匹配（slog handler 架构的固有限制）。
func WithTagKeys(keys ...string) HandlerOption {
	return func(h *SamplingHandler) {
		if len(keys) > 0 {
			h.tagKeys = append([]string(nil), keys...)
		}
	}
}

// NewSamplingHandler 创建采样 handler
//
// base 是实际负责格式化输出的底层 handler（如 slog.NewJSONHandler），
// decider 是共享的采样决策器。nil option 返回 ErrNilOption。
func NewSamplingHandler(base slog.Handler, decider *xdecider.Decider, opts ...HandlerOption) (*SamplingHandler, error) {
	if base == nil {
		return nil, ErrNilHandler
	}
	if decider == nil {
		return nil, ErrNilDecider
	}

	h := &SamplingHandler{
		base:      base,
		decider:   decider,
		traceFunc: TraceIDFrom,
	}
	for _, opt := range opts {
		if opt == nil {
			return nil, ErrNilOption
		}
		opt(h)
	}
	return h, nil
}

// Enabled 委托给底层 handler
//
// 级别门控先于采样：级别被禁用的日志根本不会到达 Handle，
// 也不计入采样计数器。
func (h *SamplingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

// Handle 先咨询决策器，保留时才委托底层 handler
//
// DROP 时返回 nil 且不触碰 record——昂贵的序列化被完全跳过。
// 事件元数据无论结果如何都已计入决策器的计数器。
func (h *SamplingHandler) Handle(ctx context.Context, record slog.Record) error {
	ev := xevent.Event{
		Severity:  SeverityFromLevel(record.Level),
		TraceID:   h.traceFunc(ctx),
		Timestamp: record.Time,
	}
	if len(h.tagKeys) > 0 {
		ev.Tags = h.extractTags(record)
	}

	if h.decider.Decide(ev) == xdecider.Drop {
		return nil
	}
	return h.base.Handle(ctx, record)
}

// extractTags 从记录属性中提取配置键的字符串值。
func (h *SamplingHandler) extractTags(record slog.Record) map[string]string {
	var tags map[string]string
	record.Attrs(func(attr slog.Attr) bool {
		for _, key := range h.tagKeys {
			if attr.Key != key {
				continue
			}
			if attr.Value.Kind() == slog.KindString {
				if tags == nil {
					tags = make(map[string]string, len(h.tagKeys))
				}
				tags[key] = attr.Value.String()
			}
			break
		}
		return true
	})
	return tags
}

// WithAttrs 返回带额外属性的新 handler
func (h *SamplingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &SamplingHandler{
		base:      h.base.WithAttrs(attrs),
		decider:   h.decider,
		traceFunc: h.traceFunc,
		tagKeys:   h.tagKeys,
	}
}

// WithGroup 返回带分组的新 handler
func (h *SamplingHandler) WithGroup(name string) slog.Handler {
	return &SamplingHandler{
		base:      h.base.WithGroup(name),
		decider:   h.decider,
		traceFunc: h.traceFunc,
		tagKeys:   h.tagKeys,
	}
}

// 确保实现了接口
var _ slog.Handler = (*SamplingHandler)(nil)
