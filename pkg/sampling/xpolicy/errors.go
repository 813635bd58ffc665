package xpolicy

import "errors"

// 策略校验相关的错误。
var (
	// ErrInvalidPolicy 表示策略未通过校验。
	// 所有校验错误都包装此哨兵，便于配置协作方统一拒绝安装。
	ErrInvalidPolicy = errors.New("xpolicy: invalid policy")

	// ErrNilPolicy 表示策略为 nil。
	ErrNilPolicy = errors.New("xpolicy: policy must not be nil")

	// ErrInvalidFraction 表示采样比率不在 [0.0, 1.0] 范围内。
	ErrInvalidFraction = errors.New("xpolicy: fraction must be in [0.0, 1.0]")

	// ErrInvalidLoadFactor 表示负载因子不在 [0.0, 1.0] 范围内。
	ErrInvalidLoadFactor = errors.New("xpolicy: load factor must be in [0.0, 1.0]")

	// ErrMissingRate 表示某个严重级别缺少采样比率配置。
	ErrMissingRate = errors.New("xpolicy: missing rate for severity")

	// ErrAlwaysKeepRequired 表示豁免集合缺少 ERROR 或 FATAL。
	// 错误与致命日志永不参与采样，这是策略的硬性不变量。
	ErrAlwaysKeepRequired = errors.New("xpolicy: always-keep set must contain ERROR and FATAL")

	// ErrNilPredicate 表示内容规则的谓词为 nil。
	ErrNilPredicate = errors.New("xpolicy: rule predicate must not be nil")
)
