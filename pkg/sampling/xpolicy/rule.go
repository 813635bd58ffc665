package xpolicy

import "strings"

// Predicate 标签谓词函数
//
// 对事件的标签集合求值，返回是否匹配。
// 谓词必须是纯函数且并发安全：决策器会在多个 goroutine 中
// 对同一策略快照并发求值。
type Predicate func(tags map[string]string) bool

// Rule 基于标签的内容规则
//
// 规则按策略中的声明顺序求值，首个匹配的规则以其 Fraction
// 覆盖该事件的按级别采样比率。
type Rule struct {
	// Name 规则名称，用于调试输出和 CLI 展示，可以为空。
	Name string

	// Match 标签谓词，不能为 nil。
	Match Predicate

	// Fraction 匹配时生效的覆盖比率，范围 [0.0, 1.0]。
	Fraction float64
}

// TagsEqual 构造全匹配谓词
//
// 所有给定键值对都与事件标签精确相等时匹配。
// want 为空时匹配所有事件（可用作策略的兜底规则）。
//
// 构造时复制 want，调用方之后修改原 map 不影响谓词行为。
func TagsEqual(want map[string]string) Predicate {
	copied := make(map[string]string, len(want))
	for k, v := range want {
		copied[k] = v
	}
	return func(tags map[string]string) bool {
		for k, v := range copied {
			if tags[k] != v {
				return false
			}
		}
		return true
	}
}

// TagPrefix 构造前缀匹配谓词
//
// 事件标签中 key 对应的值以 prefix 开头时匹配。
// key 不存在时不匹配（空值不视为任意前缀的匹配，prefix 为空除外）。
func TagPrefix(key, prefix string) Predicate {
	return func(tags map[string]string) bool {
		v, ok := tags[key]
		if !ok {
			return false
		}
		return strings.HasPrefix(v, prefix)
	}
}
