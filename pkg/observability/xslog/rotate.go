package xslog

import (
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// 轮转输出默认配置值。
const (
	// DefaultMaxSizeMB 默认单个日志文件最大大小（MB）
	DefaultMaxSizeMB = 500

	// DefaultMaxBackups 默认保留的备份文件数量
	DefaultMaxBackups = 7

	// DefaultMaxAgeDays 默认保留备份的天数
	DefaultMaxAgeDays = 30
)

// rotateConfig 轮转输出配置。
type rotateConfig struct {
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
	compress   bool
}

// RotateOption 轮转输出配置选项。
type RotateOption func(*rotateConfig)

// WithMaxSize 设置单个日志文件最大大小（MB），非正值保留默认。
func WithMaxSize(mb int) RotateOption {
	return func(c *rotateConfig) {
		if mb > 0 {
			c.maxSizeMB = mb
		}
	}
}

// WithMaxBackups 设置保留的备份文件数量，0 表示不限制数量。
func WithMaxBackups(n int) RotateOption {
	return func(c *rotateConfig) {
		if n >= 0 {
			c.maxBackups = n
		}
	}
}

// WithMaxAge 设置保留备份的天数，0 表示不按天数清理。
func WithMaxAge(days int) RotateOption {
	return func(c *rotateConfig) {
		if days >= 0 {
			c.maxAgeDays = days
		}
	}
}

// WithCompress 设置是否 gzip 压缩备份文件。
func WithCompress(compress bool) RotateOption {
	return func(c *rotateConfig) {
		c.compress = compress
	}
}

// NewRotatingWriter 创建 lumberjack 轮转文件输出
//
// 返回的 WriteCloser 并发安全，可直接作为 slog.NewJSONHandler 等
// 底层 handler 的输出目标。默认配置：单文件 500MB、保留 7 个备份、
// 30 天、压缩备份。
//
// 示例：
//
//	w, err := xslog.NewRotatingWriter("/var/log/app/app.log")
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	base := slog.NewJSONHandler(w, nil)
//	handler, err := xslog.NewSamplingHandler(base, decider)
func NewRotatingWriter(filename string, opts ...RotateOption) (io.WriteCloser, error) {
	if filename == "" {
		return nil, ErrEmptyFilename
	}

	cfg := &rotateConfig{
		maxSizeMB:  DefaultMaxSizeMB,
		maxBackups: DefaultMaxBackups,
		maxAgeDays: DefaultMaxAgeDays,
		compress:   true,
	}
	for _, opt := range opts {
		if opt == nil {
			return nil, ErrNilOption
		}
		opt(cfg)
	}

	return &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    cfg.maxSizeMB,
		MaxBackups: cfg.maxBackups,
		MaxAge:     cfg.maxAgeDays,
		Compress:   cfg.compress,
	}, nil
}
