// Package sampling 提供日志采样决策相关的子包。
//
// 子包列表：
//   - xevent: 采样事件与严重级别定义
//   - xpolicy: 采样策略（级别比例、内容规则、负载因子）
//   - xdecider: 采样决策引擎，支持策略原子热更新
//   - xstats: 按级别的 seen/kept 计数与 OpenTelemetry 导出
//
// 设计原则：
//   - 决策路径无锁、无阻塞、不返回错误（内部故障一律保留）
//   - 同一 trace ID 在同一策略下的决策完全确定
//   - 策略在安装时校验，决策热路径不做校验
package sampling
