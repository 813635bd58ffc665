package xpolicyconf

import (
	"fmt"

	"github.com/omeyang/xsample/pkg/sampling/xevent"
	"github.com/omeyang/xsample/pkg/sampling/xpolicy"
)

// fileSpec 策略文件的反序列化结构。
type fileSpec struct {
	AlwaysKeep []string           `koanf:"always_keep"`
	Rates      map[string]float64 `koanf:"rates"`
	Rules      []ruleSpec         `koanf:"rules"`
	// LoadFactor 用指针区分"未配置"（缺省 1.0）与显式 0.0。
	LoadFactor *float64 `koanf:"load_factor"`
}

// ruleSpec 内容规则的反序列化结构。
type ruleSpec struct {
	Name string `koanf:"name"`
	// Match 标签精确匹配，所有键值对都相等时命中。
	Match map[string]string `koanf:"match"`
	// MatchPrefix 标签前缀匹配，与 Match 并存时须同时满足。
	MatchPrefix map[string]string `koanf:"match_prefix"`
	Fraction    float64           `koanf:"fraction"`
}

// compile 将文件结构编译为策略
//
// 级别名称解析失败返回包装 ErrParseFailed 的错误；
// 策略层面的约束（豁免集合、比率范围等）由随后的 Validate 把关。
func (s fileSpec) compile() (*xpolicy.Policy, error) {
	policy := &xpolicy.Policy{
		AlwaysKeep:     make(map[xevent.Severity]bool, len(s.AlwaysKeep)),
		RateBySeverity: make(map[xevent.Severity]float64, len(s.Rates)),
		LoadFactor:     1.0,
	}

	for _, name := range s.AlwaysKeep {
		sev, err := xevent.ParseSeverity(name)
		if err != nil {
			return nil, fmt.Errorf("%w: always_keep: %w", ErrParseFailed, err)
		}
		policy.AlwaysKeep[sev] = true
	}

	for name, rate := range s.Rates {
		sev, err := xevent.ParseSeverity(name)
		if err != nil {
			return nil, fmt.Errorf("%w: rates: %w", ErrParseFailed, err)
		}
		policy.RateBySeverity[sev] = rate
	}

	for _, rs := range s.Rules {
		policy.Rules = append(policy.Rules, rs.compile())
	}

	if s.LoadFactor != nil {
		policy.LoadFactor = *s.LoadFactor
	}

	return policy, nil
}

// compile 将规则结构编译为谓词规则。
func (rs ruleSpec) compile() xpolicy.Rule {
	preds := make([]xpolicy.Predicate, 0, 1+len(rs.MatchPrefix))
	if len(rs.Match) > 0 {
		preds = append(preds, xpolicy.TagsEqual(rs.Match))
	}
	for key, prefix := range rs.MatchPrefix {
		preds = append(preds, xpolicy.TagPrefix(key, prefix))
	}

	var match xpolicy.Predicate
	switch len(preds) {
	case 0:
		// 无匹配条件的规则是兜底规则，匹配所有事件
		match = xpolicy.TagsEqual(nil)
	case 1:
		match = preds[0]
	default:
		match = allOf(preds)
	}

	return xpolicy.Rule{
		Name:     rs.Name,
		Match:    match,
		Fraction: rs.Fraction,
	}
}

// allOf 组合多个谓词，全部命中才匹配。
func allOf(preds []xpolicy.Predicate) xpolicy.Predicate {
	return func(tags map[string]string) bool {
		for _, pred := range preds {
			if !pred(tags) {
				return false
			}
		}
		return true
	}
}
