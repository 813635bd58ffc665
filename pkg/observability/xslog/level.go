package xslog

import (
	"log/slog"

	"github.com/omeyang/xsample/pkg/sampling/xevent"
)

// 扩展的 slog 级别，与 slog 标准级别的 4 级间距保持一致。
const (
	// LevelTrace 细粒度追踪级别，低于 slog.LevelDebug。
	LevelTrace = slog.LevelDebug - 4

	// LevelFatal 致命错误级别，高于 slog.LevelError。
	// 记录后是否终止进程由调用方决定，xslog 不调用 os.Exit。
	LevelFatal = slog.LevelError + 4
)

// SeverityFromLevel 将 slog 级别映射到采样严重级别
//
// 区间映射：落在两个标准级别之间的自定义级别（如 INFO+2）
// 归入下方的标准级别，与 slog 的级别启用语义一致。
func SeverityFromLevel(level slog.Level) xevent.Severity {
	switch {
	case level >= LevelFatal:
		return xevent.SeverityFatal
	case level >= slog.LevelError:
		return xevent.SeverityError
	case level >= slog.LevelWarn:
		return xevent.SeverityWarn
	case level >= slog.LevelInfo:
		return xevent.SeverityInfo
	case level >= slog.LevelDebug:
		return xevent.SeverityDebug
	default:
		return xevent.SeverityTrace
	}
}
