package xengine

import (
	"fmt"
	"os"
	"time"

	"github.com/omeyang/rollkit/pkg/rotate/xscan"
	"github.com/omeyang/rollkit/pkg/rotate/xscheme"
)

// Engine 按大小触发的轮转引擎。
//
// 引擎不是并发安全的：所有方法必须在同一个串行执行上下文中调用
// （xroller 的单消费者队列满足该约束）。
type Engine struct {
	cfg    Config
	target string

	// current 当前写入的文件路径。原地归档策略下恒等于 target；
	// 新建文件策略下在每次轮转时推进到新铸造的路径。
	// 只在构造和轮转内部变更，从不别名外泄。
	current string

	writer   Writer
	delegate Delegate    // 可选通知接收方
	onError  func(error) // 可选诊断回调，nil 表示静默

	// 可注入的依赖（nil 时使用真实实现），仅用于测试
	sizeFn     func(string) (int64, error)
	siblingsFn func(string) ([]string, error)
	nowFn      func() time.Time
	newIDFn    func() string
}

// Option 引擎配置选项函数。
type Option func(*Engine)

// WithDelegate 设置轮转生命周期通知的接收方。
//
// 引擎持有 delegate 但不拥有它；通知失败或 panic 不会被隔离，
// 实现方自行保证快速且不出错。
func WithDelegate(d Delegate) Option {
	return func(e *Engine) {
		e.delegate = d
	}
}

// WithOnError 设置诊断回调。
//
// 稳态轮转中被吞掉的错误（探测、扫描、移动、删除、重开失败）
// 全部经由该回调上报，便于观测与测试。回调不得向同一日志目标
// 写入，否则产生递归。
func WithOnError(fn func(error)) Option {
	return func(e *Engine) {
		e.onError = fn
	}
}

// New 创建轮转引擎。
//
// 校验配置与目标路径（目标已存在且是目录时返回 [ErrNotAFile]），
// 并完成构造期的初始当前文件选择：
//   - 原地归档策略：当前路径就是目标路径；
//   - 新建文件策略：扫描历史代文件，取修改时间最新者作为当前路径
//     （进程重启后继续写上一次的活跃文件），没有历史文件时使用
//     目标路径。
//
// New 不打开任何文件句柄；首次 Reopen 由调用方（xroller 构造时）
// 触发，以便句柄创建失败成为构造期错误。
func New(target string, w Writer, cfg Config, opts ...Option) (*Engine, error) {
	if target == "" {
		return nil, ErrEmptyTarget
	}
	if w == nil {
		return nil, ErrNilWriter
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotAFile, target)
	}

	e := &Engine{
		cfg:    cfg,
		target: target,
		writer: w,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	e.current = e.initialPath()
	return e, nil
}

// initialPath 构造期的初始当前文件选择。
func (e *Engine) initialPath() string {
	if e.cfg.Strategy != StrategyCreateNewFile {
		return e.target
	}
	sibs, err := e.siblings()
	if err != nil {
		e.reportError(fmt.Errorf("xengine: initial sibling scan failed: %w", err))
		return e.target
	}
	if len(sibs) == 0 {
		return e.target
	}
	return sibs[len(sibs)-1]
}

// Target 返回规范的目标路径（构造后不变）。
func (e *Engine) Target() string {
	return e.target
}

// CurrentPath 返回当前写入的文件路径。
func (e *Engine) CurrentPath() string {
	return e.current
}

// Config 返回引擎配置的副本。
func (e *Engine) Config() Config {
	return e.cfg
}

// ShouldRotate 判断当前文件是否需要轮转：大小严格大于上限时为真。
//
// 失败安全：文件不存在或探测出错时返回 false——绝不因为无法确定
// 大小而阻塞写入。探测错误（非"不存在"）会经诊断回调上报。
func (e *Engine) ShouldRotate() bool {
	size, err := e.size(e.current)
	if err != nil {
		if !os.IsNotExist(err) {
			e.reportError(fmt.Errorf("xengine: size probe failed: %w", err))
		}
		return false
	}
	return size > e.cfg.MaxFileSize
}

// CheckAndRotate 在需要时执行一次轮转，返回是否发生了轮转。
//
// 轮转后的重开失败同样被吞掉（经诊断回调上报）：引擎不重试也不
// 中止宿主进程，后续写入会继续使用陈旧或缺失的句柄，直到下一次
// 成功的轮转或重启。日志子系统不允许拖垮宿主，降级运行是刻意的
// 设计而非缺陷。
func (e *Engine) CheckAndRotate() bool {
	if !e.ShouldRotate() {
		return false
	}
	if err := e.Rotate(); err != nil {
		e.reportError(err)
	}
	return true
}

// Rotate 无条件执行一次轮转：按策略处置文件集合，然后指示写入器
// 重开当前路径。
//
// 策略内部各步骤的错误已各自上报并吞掉；返回值只反映最后一步
// Reopen 的结果，因为只有它影响后续写入的可用性。
func (e *Engine) Rotate() error {
	switch e.cfg.Strategy {
	case StrategyCreateNewFile:
		e.createNewFile()
	default:
		e.archiveInPlace()
	}

	if err := e.writer.Reopen(e.current); err != nil {
		return fmt.Errorf("xengine: reopen %s failed: %w", e.current, err)
	}
	return nil
}

// =============================================================================
// 内部辅助
// =============================================================================

func (e *Engine) size(path string) (int64, error) {
	if e.sizeFn != nil {
		return e.sizeFn(path)
	}
	return xscan.Size(path)
}

func (e *Engine) siblings() ([]string, error) {
	if e.siblingsFn != nil {
		return e.siblingsFn(e.target)
	}
	return xscan.Siblings(e.target)
}

func (e *Engine) now() time.Time {
	if e.nowFn != nil {
		return e.nowFn()
	}
	return time.Now()
}

func (e *Engine) newID() string {
	if e.newIDFn != nil {
		return e.newIDFn()
	}
	return xscheme.NewUniqueID()
}

// reportError 经诊断回调上报被吞掉的错误。
//
// 设计决策: 与 xroller 相同，回调 panic 被 recover 隔离，防止诊断
// 通道反向中断轮转流程。
func (e *Engine) reportError(err error) {
	if err != nil && e.onError != nil {
		defer func() { _ = recover() }()
		e.onError(err)
	}
}
