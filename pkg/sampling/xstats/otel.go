package xstats

import (
	"context"
	"fmt"

	"github.com/omeyang/xsample/pkg/sampling/xevent"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	defaultInstrumentationName = "github.com/omeyang/xsample/pkg/sampling/xstats"

	metricEventsSeen = "xsample.events.seen"
	metricEventsKept = "xsample.events.kept"

	attrSeverity = "severity"
)

type otelConfig struct {
	instrumentationName string
	meterProvider       metric.MeterProvider
}

// Option 定义 OTel 桥接的配置选项。
type Option func(*otelConfig)

// WithInstrumentationName 设置 OTel instrumentation 名称。
func WithInstrumentationName(name string) Option {
	return func(cfg *otelConfig) {
		if name != "" {
			cfg.instrumentationName = name
		}
	}
}

// WithMeterProvider 设置 MeterProvider。
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(cfg *otelConfig) {
		if provider != nil {
			cfg.meterProvider = provider
		}
	}
}

// RegisterOTel 将计数器注册为 OTel 可观测计数器
//
// 注册 xsample.events.seen 与 xsample.events.kept 两个 Int64ObservableCounter，
// 以 severity 属性区分级别。回调由 MeterProvider 的采集周期驱动，
// 读取 Snapshot——wait-free，不会阻塞决策热路径上的 Record。
//
// 返回的 Registration 可用于注销回调（如组件关闭时）。
func RegisterOTel(c *Collector, opts ...Option) (metric.Registration, error) {
	if c == nil {
		return nil, ErrNilCollector
	}

	cfg := &otelConfig{
		instrumentationName: defaultInstrumentationName,
		meterProvider:       otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	meter := cfg.meterProvider.Meter(cfg.instrumentationName)

	seen, err := meter.Int64ObservableCounter(
		metricEventsSeen,
		metric.WithDescription("log events inspected by the sampling decider"),
	)
	if err != nil {
		return nil, fmt.Errorf("xstats: failed to create %s counter: %w", metricEventsSeen, err)
	}

	kept, err := meter.Int64ObservableCounter(
		metricEventsKept,
		metric.WithDescription("log events kept by the sampling decider"),
	)
	if err != nil {
		return nil, fmt.Errorf("xstats: failed to create %s counter: %w", metricEventsKept, err)
	}

	// 预构造各级别的属性集，回调热路径零分配
	attrSets := make([]metric.MeasurementOption, xevent.NumSeverities)
	for _, sev := range xevent.Severities() {
		attrSets[sev] = metric.WithAttributeSet(
			attribute.NewSet(attribute.String(attrSeverity, sev.String())),
		)
	}

	reg, err := meter.RegisterCallback(func(_ context.Context, observer metric.Observer) error {
		snap := c.Snapshot()
		for _, sev := range xevent.Severities() {
			count := snap.BySeverity(sev)
			observer.ObserveInt64(seen, int64(count.Seen), attrSets[sev])
			observer.ObserveInt64(kept, int64(count.Kept), attrSets[sev])
		}
		return nil
	}, seen, kept)
	if err != nil {
		return nil, fmt.Errorf("xstats: failed to register callback: %w", err)
	}

	return reg, nil
}
