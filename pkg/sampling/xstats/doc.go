// Package xstats 提供按严重级别的采样计数器（seen/kept）。
//
// # 核心类型
//
//   - Collector: 进程级计数器集合，每个严重级别一对 (seen, kept) 原子计数
//   - Snapshot: 计数器的一致性读取快照
//
// # 语义
//
// 决策器在每次决策时调用 Record，无论结果是保留还是丢弃——
// 即使事件被采样丢弃，其元数据仍计入 seen。这使运维方能够
// 通过 kept/seen 观察实际采样率，与配置的采样比率对照。
//
// # 并发模型
//
// Record 是无锁原子递增，可被任意多个生产者并发调用。
// Snapshot 是 wait-free 的原子读取，读取方（指标上报）永不阻塞写入方。
// 不保证 seen 与 kept 之间的瞬时一致——只保证聚合计数最终一致，
// 这对周期性指标上报是足够的。
//
// # OpenTelemetry 桥接
//
// RegisterOTel 将计数器注册为 OTel 可观测计数器
// （xsample.events.seen / xsample.events.kept，severity 属性区分级别），
// 由 MeterProvider 的采集周期驱动回调读取快照。
package xstats
