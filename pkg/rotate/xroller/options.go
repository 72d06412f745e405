package xroller

import (
	"os"
	"time"

	"github.com/omeyang/rollkit/pkg/rotate/xengine"
	"github.com/omeyang/rollkit/pkg/rotate/xscheme"
)

// DefaultFileMode 默认日志文件权限。
const DefaultFileMode os.FileMode = 0o600

// rollerConfig Roller 构造配置。
type rollerConfig struct {
	engine   xengine.Config
	fileMode os.FileMode
	onError  func(error)
	delegate xengine.Delegate
	observe  func(time.Duration)
}

// Option Roller 配置选项函数。
type Option func(*rollerConfig)

// WithMaxSize 设置单个日志文件最大字节数，超过（严格大于）时触发轮转。
func WithMaxSize(bytes int64) Option {
	return func(c *rollerConfig) {
		c.engine.MaxFileSize = bytes
	}
}

// WithMaxArchived 设置保留的归档文件数量（仅原地归档策略生效）。
func WithMaxArchived(n int) Option {
	return func(c *rollerConfig) {
		c.engine.MaxArchived = n
	}
}

// WithScheme 设置被替换文件的命名方案。
func WithScheme(s xscheme.Scheme) Option {
	return func(c *rollerConfig) {
		c.engine.Scheme = s
	}
}

// WithStrategy 设置轮转时新当前文件的产生策略。
func WithStrategy(s xengine.Strategy) Option {
	return func(c *rollerConfig) {
		c.engine.Strategy = s
	}
}

// WithFileMode 设置日志文件权限。
//
// 仅允许权限位（0000~0777），文件类型位或 setuid/setgid 会在构造期
// 被拒绝。权限在打开文件时应用，受进程 umask 约束。
func WithFileMode(mode os.FileMode) Option {
	return func(c *rollerConfig) {
		c.fileMode = mode
	}
}

// WithOnError 设置错误回调函数。
//
// 稳态运行中被吞掉的错误（轮转各步骤、重开失败）经由该回调上报。
//
// 设计决策: 不使用 slog 等日志库记录内部错误，避免 Roller 作为日志
// 输出目标时产生递归写入（写失败 → 打日志 → 再写失败）。回调函数
// 不得向同一 Roller 写入数据。
func WithOnError(fn func(error)) Option {
	return func(c *rollerConfig) {
		c.onError = fn
	}
}

// WithDelegate 设置轮转生命周期通知的接收方（归档完成、归档删除）。
func WithDelegate(d xengine.Delegate) Option {
	return func(c *rollerConfig) {
		c.delegate = d
	}
}

// WithRotationObserver 设置轮转耗时观测回调，每完成一次轮转调用一次。
//
// 供指标采集（如 xmetrics 的直方图）使用；回调在串行队列内执行，
// 必须快速返回。
func WithRotationObserver(fn func(time.Duration)) Option {
	return func(c *rollerConfig) {
		c.observe = fn
	}
}
