// Package xslog 提供 log/slog 与采样决策器的集成（日志生产者协作方）。
//
// # SamplingHandler
//
// 装饰模式实现：包装底层 slog.Handler，在 Handle() 中先咨询决策器，
// DROP 时直接返回——属性序列化与 slog.LogValuer 延迟求值都不会发生，
// 被丢弃日志的格式化开销为零。事件元数据（级别、trace ID、标签）
// 无论结果如何都计入决策器的 (seen, kept) 计数器。
//
// # 级别映射
//
// slog 标准级别映射到采样严重级别，并扩展两个自定义级别：
//
//   - LevelFatal (ERROR+4) → FATAL
//   - slog.LevelError → ERROR
//   - slog.LevelWarn → WARN
//   - slog.LevelInfo → INFO
//   - slog.LevelDebug → DEBUG
//   - LevelTrace (DEBUG-4) → TRACE
//
// # Trace ID 传播
//
// 默认通过 WithTraceID/TraceIDFrom 在 context 中携带 trace ID，
// 也可用 WithTraceIDFunc 对接现有追踪体系（如 OpenTelemetry span context）。
// context 缺少 trace ID 时事件视为畸形，决策器 fail open 保留——
// 日志绝不会因上下文传播断裂而静默丢失。
//
// # 轮转输出
//
// NewRotatingWriter 提供 lumberjack 轮转文件输出，
// 供底层 JSON/Text handler 使用。
package xslog
