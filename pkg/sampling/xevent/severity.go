package xevent

import (
	"fmt"
	"strings"
)

// Severity 日志严重级别
//
// 按临界程度全序排列，FATAL 最高。数值越大级别越高，
// 可直接用 < / > 比较。
type Severity int

// 严重级别常量，从低到高排列。
const (
	SeverityTrace Severity = iota
	SeverityDebug
	SeverityInfo
	SeverityWarn
	SeverityError
	SeverityFatal
)

// NumSeverities 严重级别总数，供按级别索引的计数器等场景使用。
const NumSeverities = 6

// Severities 返回所有严重级别，从低到高排列。
//
// 每次调用返回新切片，调用方可自由修改。
func Severities() []Severity {
	return []Severity{
		SeverityTrace,
		SeverityDebug,
		SeverityInfo,
		SeverityWarn,
		SeverityError,
		SeverityFatal,
	}
}

// Valid 报告级别是否在合法范围内。
func (s Severity) Valid() bool {
	return s >= SeverityTrace && s <= SeverityFatal
}

// String 返回级别的大写名称
//
// 非法级别返回 "Severity(n)" 形式，便于调试输出。
func (s Severity) String() string {
	switch s {
	case SeverityTrace:
		return "TRACE"
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarn:
		return "WARN"
	case SeverityError:
		return "ERROR"
	case SeverityFatal:
		return "FATAL"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// MarshalText 实现 encoding.TextMarshaler 接口
//
// 支持策略文件序列化场景（YAML/JSON）。
func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSeverity, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler 接口
//
// 支持从策略文件直接反序列化严重级别。
func (s *Severity) UnmarshalText(data []byte) error {
	parsed, err := ParseSeverity(string(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity 解析字符串为严重级别
// 支持 trace/debug/info/warn/warning/error/fatal（大小写不敏感）
// 输入会自动 TrimSpace，与配置文件解析行为一致
func ParseSeverity(str string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "trace":
		return SeverityTrace, nil
	case "debug":
		return SeverityDebug, nil
	case "info":
		return SeverityInfo, nil
	case "warn", "warning":
		return SeverityWarn, nil
	case "error":
		return SeverityError, nil
	case "fatal":
		return SeverityFatal, nil
	default:
		return SeverityInfo, fmt.Errorf("%w: %q", ErrInvalidSeverity, str)
	}
}
