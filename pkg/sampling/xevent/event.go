package xevent

import (
	"fmt"
	"time"
)

// Event 采样决策的输入事件
//
// 只携带决策相关的元数据，不携带日志正文——决策发生在格式化/序列化之前，
// 正文在 DROP 时根本不会被构造（延迟求值）。
//
// 设计决策: Event 按值传递而非指针。决策器从不存储事件，
// 值语义杜绝了决策器与生产者之间的共享可变状态。
type Event struct {
	// Severity 事件的严重级别。
	Severity Severity

	// TraceID 事件所属分布式事务的标识。
	// 同一 TraceID 的所有事件在同一策略快照下获得相同的采样结果。
	TraceID string

	// Tags 内容规则匹配用的键值对（如 endpoint、user_tier）。
	// 可以为 nil。
	Tags map[string]string

	// Timestamp 事件发生时间。
	Timestamp time.Time
}

// Validate 校验事件是否包含决策必需的字段
//
// 返回的错误均包装 ErrMalformedEvent。畸形事件的处理策略由调用方决定，
// 决策器本身对畸形事件 fail open（按保留处理），见 xdecider。
func (e Event) Validate() error {
	if !e.Severity.Valid() {
		return fmt.Errorf("%w: %w: %d", ErrMalformedEvent, ErrInvalidSeverity, int(e.Severity))
	}
	if e.TraceID == "" {
		return fmt.Errorf("%w: %w", ErrMalformedEvent, ErrMissingTraceID)
	}
	return nil
}

// Tag 返回指定 key 的标签值，不存在时返回空字符串。
func (e Event) Tag(key string) string {
	return e.Tags[key]
}
