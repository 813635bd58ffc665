// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xslog: log/slog 采样 Handler 与轮转输出
//
// 设计原则：
//   - 采样决策在序列化之前完成，丢弃的日志不付出编码成本
//   - 自动从 context 中提取 trace ID 参与一致性采样
package observability
