package xmetrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/omeyang/rollkit/pkg/rotate/xengine"
)

const (
	defaultInstrumentationName = "github.com/omeyang/rollkit/pkg/observability/xmetrics"

	metricRotationDuration = "rollkit.rotation.duration"
	metricArchivedTotal    = "rollkit.archive.created.total"
	metricRemovedTotal     = "rollkit.archive.removed.total"
	metricErrorsTotal      = "rollkit.rotation.errors.total"
)

// 编译时断言：Recorder 可直接用作轮转通知接收方
var _ xengine.Delegate = (*Recorder)(nil)

// Recorder 轮转生命周期指标记录器。
type Recorder struct {
	duration metric.Float64Histogram
	archived metric.Int64Counter
	removed  metric.Int64Counter
	errors   metric.Int64Counter

	// attrs 随实例固定的属性（如目标路径），随每个数据点上报
	attrs []attribute.KeyValue
}

type recorderConfig struct {
	instrumentationName string
	meterProvider       metric.MeterProvider
	attrs               []attribute.KeyValue
}

// Option Recorder 配置选项函数。
type Option func(*recorderConfig)

// WithInstrumentationName 设置 OTel instrumentation 名称。
func WithInstrumentationName(name string) Option {
	return func(cfg *recorderConfig) {
		if name != "" {
			cfg.instrumentationName = name
		}
	}
}

// WithMeterProvider 设置 MeterProvider，默认使用全局 provider。
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(cfg *recorderConfig) {
		if provider != nil {
			cfg.meterProvider = provider
		}
	}
}

// WithTarget 把日志目标路径作为固定属性附加到所有数据点上，
// 便于同一进程内多个轮转目标的指标区分。
func WithTarget(path string) Option {
	return func(cfg *recorderConfig) {
		if path != "" {
			cfg.attrs = append(cfg.attrs, attribute.String("log.target", path))
		}
	}
}

// NewRecorder 创建轮转指标记录器。
func NewRecorder(opts ...Option) (*Recorder, error) {
	cfg := &recorderConfig{
		instrumentationName: defaultInstrumentationName,
		meterProvider:       otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	meter := cfg.meterProvider.Meter(cfg.instrumentationName)

	duration, err := meter.Float64Histogram(
		metricRotationDuration,
		metric.WithDescription("log rotation duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("xmetrics: create histogram failed: %w", err)
	}

	archived, err := meter.Int64Counter(
		metricArchivedTotal,
		metric.WithDescription("archives created by rotation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xmetrics: create counter failed: %w", err)
	}

	removed, err := meter.Int64Counter(
		metricRemovedTotal,
		metric.WithDescription("archives deleted by retention"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xmetrics: create counter failed: %w", err)
	}

	errors, err := meter.Int64Counter(
		metricErrorsTotal,
		metric.WithDescription("swallowed rotation errors"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xmetrics: create counter failed: %w", err)
	}

	return &Recorder{
		duration: duration,
		archived: archived,
		removed:  removed,
		errors:   errors,
		attrs:    cfg.attrs,
	}, nil
}

// Archived 实现 [xengine.Delegate]：统计归档移动。
func (r *Recorder) Archived(_, _ string) {
	r.archived.Add(context.Background(), 1, metric.WithAttributes(r.attrs...))
}

// ArchiveRemoved 实现 [xengine.Delegate]：统计保留清理删除。
func (r *Recorder) ArchiveRemoved(_ string) {
	r.removed.Add(context.Background(), 1, metric.WithAttributes(r.attrs...))
}

// OnError 统计被吞掉的轮转错误，可直接作为 xroller.WithOnError 回调。
func (r *Recorder) OnError(err error) {
	if err == nil {
		return
	}
	r.errors.Add(context.Background(), 1, metric.WithAttributes(r.attrs...))
}

// ObserveRotation 记录一次轮转耗时，可直接作为
// xroller.WithRotationObserver 回调。
func (r *Recorder) ObserveRotation(d time.Duration) {
	r.duration.Record(context.Background(), d.Seconds(), metric.WithAttributes(r.attrs...))
}
