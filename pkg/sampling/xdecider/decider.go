package xdecider

import (
	"fmt"
	"sync/atomic"

	"github.com/omeyang/xsample/internal/tracehash"
	"github.com/omeyang/xsample/pkg/sampling/xevent"
	"github.com/omeyang/xsample/pkg/sampling/xpolicy"
	"github.com/omeyang/xsample/pkg/sampling/xstats"
)

// Decider 日志采样决策器
//
// 设计决策: 工厂函数返回具体类型而非接口，因为 Policy()、Stats()
// 提供了有用的自省能力（CLI、指标上报），这些无法通过最小接口获得。
type Decider struct {
	policy      atomic.Pointer[xpolicy.Policy]
	stats       *xstats.Collector
	onError     func(error)
	onMalformed func(error)
}

// Option 配置 Decider 的可选参数。
type Option func(*Decider)

// WithCollector 设置共享的计数器集合
//
// 多个决策器（或决策器与外部上报逻辑）可共享同一个 Collector。
// nil 会被忽略，保留默认的独立 Collector。
func WithCollector(c *xstats.Collector) Option {
	return func(d *Decider) {
		if c != nil {
			d.stats = c
		}
	}
}

// WithOnMalformed 设置畸形事件回调
//
// 事件缺少 trace ID 或级别非法时，在 fail open（按保留处理）前调用。
// 用于指标计数或日志记录，帮助发现决策器调用方的 bug。
// 回调应当轻量且不得 panic——决策热路径不对回调做 recover 隔离，
// 回调由调用方注入，调用方有责任保证其安全性。nil 回调会被忽略。
func WithOnMalformed(fn func(error)) Option {
	return func(d *Decider) {
		if fn != nil {
			d.onMalformed = fn
		}
	}
}

// WithOnError 设置内部错误回调
//
// 决策过程发生内部错误（如被恢复的 panic、绕过校验的策略缺陷）时，
// 在 fail open 前调用。约束与 WithOnMalformed 相同：轻量、不得 panic。
// nil 回调会被忽略。
func WithOnError(fn func(error)) Option {
	return func(d *Decider) {
		if fn != nil {
			d.onError = fn
		}
	}
}

// New 创建采样决策器
//
// policy 经 Validate 校验后以深拷贝安装为首个快照，
// 校验失败返回包装 ErrInvalidPolicy 的错误。
// nil option 返回 ErrNilOption。
func New(policy *xpolicy.Policy, opts ...Option) (*Decider, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	d := &Decider{}
	for _, opt := range opts {
		if opt == nil {
			return nil, ErrNilOption
		}
		opt(d)
	}
	if d.stats == nil {
		d.stats = xstats.NewCollector()
	}

	d.policy.Store(policy.Clone())
	return d, nil
}

// Decide 对事件做出采样决策
//
// 并发安全、非阻塞。无论结果如何都会递增按级别的 (seen, kept) 计数器。
// 任何内部异常 fail open 返回 Keep，绝不向调用方传播 panic。
func (d *Decider) Decide(ev xevent.Event) Decision {
	decision := d.evaluate(ev)
	d.stats.Record(ev.Severity, decision == Keep)
	return decision
}

// evaluate 执行决策算法，内部 panic 恢复为 Keep。
func (d *Decider) evaluate(ev xevent.Event) (decision Decision) {
	// 采样器的故障绝不能中止宿主应用，也绝不能静默丢日志
	defer func() {
		if r := recover(); r != nil {
			decision = Keep
			if d.onError != nil {
				d.onError(fmt.Errorf("xdecider: recovered from panic: %v", r))
			}
		}
	}()

	if err := ev.Validate(); err != nil {
		if d.onMalformed != nil {
			d.onMalformed(err)
		}
		return Keep
	}

	policy := d.policy.Load()

	// 豁免级别（ERROR/FATAL 必然在内）不参与采样
	if policy.Exempt(ev.Severity) {
		return Keep
	}

	fraction, err := policy.FractionFor(ev)
	if err != nil {
		// 只有绕过校验构造的策略才可达，fail open
		if d.onError != nil {
			d.onError(err)
		}
		return Keep
	}

	// 自适应缩放：负载越高（LoadFactor 越低）保留越少
	effective := fraction * policy.LoadFactor

	if effective >= 1 {
		return Keep
	}
	if effective <= 0 {
		return Drop
	}

	// 确定性哈希而非随机数：同一 trace ID 的所有事件结果一致
	if tracehash.Normalize(ev.TraceID) < effective {
		return Keep
	}
	return Drop
}

// UpdatePolicy 原子替换策略快照
//
// 先校验后以深拷贝整体替换，并发 Decide 调用要么看到旧快照、
// 要么看到新快照，永远不会看到半更新状态。
// 校验失败返回包装 ErrInvalidPolicy 的错误，原快照保持生效。
func (d *Decider) UpdatePolicy(policy *xpolicy.Policy) error {
	if err := policy.Validate(); err != nil {
		return err
	}
	d.policy.Store(policy.Clone())
	return nil
}

// Policy 返回当前策略快照的深拷贝
//
// 拷贝可自由修改后再经 UpdatePolicy 安装，不影响生效中的快照。
func (d *Decider) Policy() *xpolicy.Policy {
	return d.policy.Load().Clone()
}

// Stats 返回决策器的计数器集合。
func (d *Decider) Stats() *xstats.Collector {
	return d.stats
}
