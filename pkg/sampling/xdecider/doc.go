// Package xdecider 实现日志采样决策器。
//
// # 决策算法
//
// Decide 按优先级顺序求值，首个适用的规则决定结果：
//
//  1. 事件级别在策略豁免集合中（ERROR/FATAL 必然在内）→ KEEP
//  2. 内容规则按序求值，首个匹配的规则给出生效比率
//  3. 无规则匹配时，生效比率取按级别采样比率
//  4. 生效比率乘以负载因子（自适应采样：负载越高保留越少）
//  5. trace ID 经确定性哈希归一化到 [0, 1)——不是每次调用的新随机数
//  6. 归一化值 < 生效比率 → KEEP，否则 → DROP
//
// 第 5 步保证一致性采样：同一 trace ID 的所有事件在同一策略快照下
// 获得相同的保留/丢弃结果，跨服务、跨进程、跨重启均一致。
//
// # 策略热更新
//
// 决策器持有策略快照的原子指针。UpdatePolicy 先校验后整体替换，
// 并发 Decide 调用永远不会观察到半更新的策略；校验失败时
// 替换被拒绝，决策器继续在上一个合法策略下运行。
//
// # Fail open
//
// 日志采样绝不能成为诊断信息丢失的原因：
//
//   - 畸形事件（缺 trace ID、非法级别）→ KEEP
//   - 决策过程中的任何内部 panic → 恢复并 KEEP
//   - 策略缺陷（绕过校验的缺失比率）→ KEEP
//
// 可通过 WithOnMalformed / WithOnError 注册回调观测这些异常路径。
//
// # 并发与性能
//
// Decide 并发安全、非阻塞，除计数器的原子递增外无共享可变状态。
// 相对标签数量 O(1)（内容规则逐条求值，规则数由策略确定）。
// 每次决策无论结果如何都会递增按级别的 (seen, kept) 计数器，
// 被丢弃事件的元数据由此保留，见 xstats。
package xdecider
