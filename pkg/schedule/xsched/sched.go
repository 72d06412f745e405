package xsched

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Rotatable 可被调度轮转的目标。
// [xroller.Roller] 和 [xlumber] 的实现都满足该接口。
type Rotatable interface {
	Rotate() error
}

// EntryID 已注册轮转任务的标识。
type EntryID = cron.EntryID

// Scheduler 定时轮转调度器。
type Scheduler struct {
	cron    *cron.Cron
	onError func(error)
}

type schedulerOptions struct {
	location *time.Location
	seconds  bool
	onError  func(error)
}

// Option 调度器配置选项函数。
type Option func(*schedulerOptions)

// WithLocation 设置 cron 表达式的时区，默认本地时区。
func WithLocation(loc *time.Location) Option {
	return func(o *schedulerOptions) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithSeconds 启用秒级精度（表达式为 6 段）。
func WithSeconds() Option {
	return func(o *schedulerOptions) {
		o.seconds = true
	}
}

// WithOnError 设置轮转失败的回调。
//
// 与 xroller 相同的约束：回调不得向被调度的轮转目标写入日志。
func WithOnError(fn func(error)) Option {
	return func(o *schedulerOptions) {
		o.onError = fn
	}
}

// New 创建定时轮转调度器。
func New(opts ...Option) *Scheduler {
	options := &schedulerOptions{
		location: time.Local,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	cronOpts := []cron.Option{cron.WithLocation(options.location)}
	if options.seconds {
		cronOpts = append(cronOpts, cron.WithSeconds())
	}

	return &Scheduler{
		cron:    cron.New(cronOpts...),
		onError: options.onError,
	}
}

// Add 按 cron 表达式注册一个轮转目标。
//
// 支持标准 5 段表达式和 "@daily"、"@every 1h" 等描述符。同一目标
// 的轮转本身是串行的（xroller 队列保证），调度触发与写入触发并存
// 不会产生并发轮转。
func (s *Scheduler) Add(spec string, target Rotatable) (EntryID, error) {
	if target == nil {
		return 0, ErrNilTarget
	}

	id, err := s.cron.AddFunc(spec, func() {
		if err := target.Rotate(); err != nil {
			s.reportError(fmt.Errorf("xsched: scheduled rotation failed: %w", err))
		}
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidSpec, spec, err)
	}
	return id, nil
}

// Remove 移除一个已注册的轮转任务。
func (s *Scheduler) Remove(id EntryID) {
	s.cron.Remove(id)
}

// Entries 返回所有已注册的任务（只读信息）。
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// Start 启动调度，立即返回。重复调用无副作用。
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop 停止调度，返回的 context 在所有执行中的轮转完成后结束。
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) reportError(err error) {
	if err != nil && s.onError != nil {
		defer func() { _ = recover() }()
		s.onError(err)
	}
}
