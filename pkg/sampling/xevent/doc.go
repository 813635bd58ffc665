// Package xevent 定义采样决策所需的日志事件模型。
//
// # 核心类型
//
//   - Severity: 日志严重级别，全序排列（TRACE < DEBUG < INFO < WARN < ERROR < FATAL）
//   - Event: 采样决策的输入事件，只包含决策相关的元数据
//
// # 设计约定
//
// Event 按约定不可变：每次日志发生时创建一个新的 Event，
// 决策器只读取、从不存储。Tags 的所有权在创建后归 Event，
// 调用方不应再修改传入的 map。
//
// # 严重级别序列化
//
// Severity 实现 encoding.TextMarshaler/TextUnmarshaler，
// 支持在 YAML/JSON 策略文件中直接使用级别名称（如 "ERROR"、"warn"）。
//
// # 事件校验
//
// Validate 检查事件是否包含决策必需的字段（severity、trace ID）。
// 校验失败返回可通过 errors.Is(err, ErrMalformedEvent) 识别的错误。
// 调用方（日志生产者）对畸形事件应 fail open（按保留处理），
// 避免因决策器调用方的 bug 导致日志静默丢失。
package xevent
