// Package xpolicy 定义采样策略模型及其校验规则。
//
// # 核心类型
//
//   - Policy: 进程级采样策略（豁免级别集合、按级别采样比率、内容规则、负载因子）
//   - Rule: 基于标签的内容规则（谓词 + 覆盖比率），按序求值、首个匹配生效
//   - Predicate: 标签谓词函数，提供 TagsEqual、TagPrefix 构造器
//
// # 策略快照语义
//
// Policy 一经安装即视为不可变快照：决策器通过原子指针读取当前快照，
// 热更新以整体替换的方式发布，并发决策调用永远不会观察到半更新状态。
// 安装前使用 Clone 深拷贝，杜绝调用方在安装后继续修改。
//
// # 校验
//
// Validate 在安装时执行一次，决策热路径不做校验：
//
//   - AlwaysKeep 必须包含 ERROR 和 FATAL（错误/致命日志永不被采样丢弃）
//   - 每个严重级别必须配置采样比率，比率在 [0.0, 1.0] 内
//   - 内容规则的谓词非 nil、覆盖比率在 [0.0, 1.0] 内
//   - LoadFactor 在 [0.0, 1.0] 内
//
// 所有校验错误都包装 ErrInvalidPolicy，配置协作方据此拒绝安装，
// 决策器继续在上一个合法策略下运行。
package xpolicy
