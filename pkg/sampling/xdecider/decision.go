package xdecider

// Decision 采样决策结果。
type Decision int

const (
	// Drop 丢弃事件：生产者应跳过格式化与序列化。
	Drop Decision = iota

	// Keep 保留事件。
	Keep
)

// String 返回决策的字符串表示。
func (d Decision) String() string {
	switch d {
	case Keep:
		return "KEEP"
	case Drop:
		return "DROP"
	default:
		return "Unknown"
	}
}
