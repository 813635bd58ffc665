package xpolicy

import (
	"fmt"
	"math"

	"github.com/omeyang/xsample/pkg/sampling/xevent"
)

// Policy 进程级采样策略
//
// 一经安装即视为不可变快照，热更新以整体替换发布（见 xdecider）。
// 字段导出以便配置层构造，但安装后不得再修改——如需变更，
// 构造新 Policy 并通过 Decider.UpdatePolicy 原子替换。
type Policy struct {
	// AlwaysKeep 完全豁免采样的严重级别集合。
	// 不变量: 必须包含 SeverityError 和 SeverityFatal。
	AlwaysKeep map[xevent.Severity]bool

	// RateBySeverity 按严重级别的采样比率，范围 [0.0, 1.0]。
	// 每个合法级别都必须有配置，缺失视为配置错误。
	RateBySeverity map[xevent.Severity]float64

	// Rules 有序内容规则，首个匹配生效，覆盖按级别比率。
	Rules []Rule

	// LoadFactor 观测到的系统负载因子，范围 [0.0, 1.0]。
	// 1.0 表示不缩减，数值越低保留的日志越少（自适应采样）。
	LoadFactor float64
}

// Default 返回一个可直接安装的保守默认策略
//
// ERROR/FATAL 豁免，WARN 全量，INFO 10%，DEBUG 1%，TRACE 不保留，
// 无内容规则，负载因子 1.0。
func Default() *Policy {
	return &Policy{
		AlwaysKeep: map[xevent.Severity]bool{
			xevent.SeverityError: true,
			xevent.SeverityFatal: true,
		},
		RateBySeverity: map[xevent.Severity]float64{
			xevent.SeverityFatal: 1.0,
			xevent.SeverityError: 1.0,
			xevent.SeverityWarn:  1.0,
			xevent.SeverityInfo:  0.1,
			xevent.SeverityDebug: 0.01,
			xevent.SeverityTrace: 0.0,
		},
		LoadFactor: 1.0,
	}
}

// Validate 校验策略
//
// 在安装时执行一次，决策热路径不重复校验。
// 所有错误都包装 ErrInvalidPolicy。
func (p *Policy) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: %w", ErrInvalidPolicy, ErrNilPolicy)
	}

	// 错误/致命日志永不被采样丢弃
	if !p.AlwaysKeep[xevent.SeverityError] || !p.AlwaysKeep[xevent.SeverityFatal] {
		return fmt.Errorf("%w: %w", ErrInvalidPolicy, ErrAlwaysKeepRequired)
	}
	for sev := range p.AlwaysKeep {
		if !sev.Valid() {
			return fmt.Errorf("%w: %w: %d", ErrInvalidPolicy, xevent.ErrInvalidSeverity, int(sev))
		}
	}

	// 每个级别都必须有比率配置
	for _, sev := range xevent.Severities() {
		rate, ok := p.RateBySeverity[sev]
		if !ok {
			return fmt.Errorf("%w: %w: %s", ErrInvalidPolicy, ErrMissingRate, sev)
		}
		if err := validateFraction(rate); err != nil {
			return fmt.Errorf("%w: severity %s: %w", ErrInvalidPolicy, sev, err)
		}
	}
	for sev := range p.RateBySeverity {
		if !sev.Valid() {
			return fmt.Errorf("%w: %w: %d", ErrInvalidPolicy, xevent.ErrInvalidSeverity, int(sev))
		}
	}

	for i, rule := range p.Rules {
		if rule.Match == nil {
			return fmt.Errorf("%w: rule %d (%s): %w", ErrInvalidPolicy, i, ruleName(rule), ErrNilPredicate)
		}
		if err := validateFraction(rule.Fraction); err != nil {
			return fmt.Errorf("%w: rule %d (%s): %w", ErrInvalidPolicy, i, ruleName(rule), err)
		}
	}

	if math.IsNaN(p.LoadFactor) || p.LoadFactor < 0 || p.LoadFactor > 1 {
		return fmt.Errorf("%w: %w", ErrInvalidPolicy, ErrInvalidLoadFactor)
	}

	return nil
}

// Clone 返回策略的深拷贝
//
// 安装前拷贝，杜绝调用方在安装后通过原引用继续修改快照。
// 谓词函数按引用共享——谓词要求是纯函数，共享引用是安全的。
func (p *Policy) Clone() *Policy {
	if p == nil {
		return nil
	}

	clone := &Policy{
		AlwaysKeep:     make(map[xevent.Severity]bool, len(p.AlwaysKeep)),
		RateBySeverity: make(map[xevent.Severity]float64, len(p.RateBySeverity)),
		LoadFactor:     p.LoadFactor,
	}
	for sev, keep := range p.AlwaysKeep {
		clone.AlwaysKeep[sev] = keep
	}
	for sev, rate := range p.RateBySeverity {
		clone.RateBySeverity[sev] = rate
	}
	if len(p.Rules) > 0 {
		clone.Rules = make([]Rule, len(p.Rules))
		copy(clone.Rules, p.Rules)
	}
	return clone
}

// Exempt 报告指定级别是否完全豁免采样。
func (p *Policy) Exempt(sev xevent.Severity) bool {
	return p.AlwaysKeep[sev]
}

// FractionFor 解析事件的生效采样比率（未经负载因子缩放）
//
// 内容规则按序求值，首个匹配的规则以其覆盖比率生效；
// 无规则匹配时回退到按级别比率。级别缺少比率配置时返回
// 包装 ErrMissingRate 的错误——已通过 Validate 的策略不会触发，
// 此分支只在策略绕过校验被直接构造时可达。
func (p *Policy) FractionFor(ev xevent.Event) (float64, error) {
	for _, rule := range p.Rules {
		if rule.Match(ev.Tags) {
			return rule.Fraction, nil
		}
	}

	rate, ok := p.RateBySeverity[ev.Severity]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingRate, ev.Severity)
	}
	return rate, nil
}

// ruleName 返回规则的展示名称，未命名规则返回占位符。
func ruleName(r Rule) string {
	if r.Name == "" {
		return "unnamed"
	}
	return r.Name
}

// validateFraction 校验比率在 [0.0, 1.0] 内且非 NaN。
func validateFraction(f float64) error {
	if math.IsNaN(f) || f < 0 || f > 1 {
		return ErrInvalidFraction
	}
	return nil
}
