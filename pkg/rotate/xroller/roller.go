package xroller

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/omeyang/rollkit/pkg/rotate/xengine"
	"github.com/omeyang/rollkit/pkg/util/xfile"
)

// 编译时断言：Roller 满足 Rotator 契约
var _ Rotator = (*Roller)(nil)

// queuedOp 串行队列中的一个操作。
type queuedOp struct {
	fn  func() error
	res chan error
}

// Roller 按大小轮转的日志写入器。
//
// 并发安全。所有操作经单消费者队列串行执行，见包文档的执行模型。
type Roller struct {
	engine *xengine.Engine
	fw     *fileWriter

	onError func(error)
	observe func(time.Duration)

	ops    chan queuedOp
	quit   chan struct{}
	done   chan struct{}
	closed atomic.Bool
}

// New 创建轮转写入器。
//
// 构造是急切的：路径净化、配置校验、初始文件选择、父目录创建和
// 首次打开全部在返回前完成，任何一步失败都返回错误而不产生半初始
// 化的实例。与稳态的吞错误策略刻意相反——配置错误应该在启动时
// 炸出来，而不是在第一条日志丢失时才被发现。
func New(filename string, opts ...Option) (*Roller, error) {
	if filename == "" {
		return nil, ErrEmptyFilename
	}

	cfg := rollerConfig{
		engine:   xengine.DefaultConfig(),
		fileMode: DefaultFileMode,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	// FileMode 仅允许权限位，拒绝文件类型位、setuid/setgid 等
	if cfg.fileMode&^os.FileMode(0o777) != 0 {
		return nil, fmt.Errorf("%w: got %04o, only permission bits (0000~0777) allowed",
			ErrInvalidFileMode, cfg.fileMode)
	}

	safePath, err := xfile.SanitizePath(filename)
	if err != nil {
		return nil, err
	}

	fw := &fileWriter{
		mode:    cfg.fileMode,
		dirPerm: xfile.DefaultDirPerm,
	}

	r := &Roller{
		fw:      fw,
		onError: cfg.onError,
		observe: cfg.observe,
		ops:     make(chan queuedOp),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	eng, err := xengine.New(safePath, fw, cfg.engine,
		xengine.WithDelegate(cfg.delegate),
		xengine.WithOnError(r.reportError),
	)
	if err != nil {
		return nil, err
	}
	r.engine = eng

	// 首次打开在消费者启动前完成，句柄创建失败是构造期错误
	if err := fw.Reopen(eng.CurrentPath()); err != nil {
		return nil, err
	}

	go r.run()
	return r, nil
}

// Target 返回规范化后的目标路径（构造后不变）。
func (r *Roller) Target() string {
	return r.engine.Target()
}

// CurrentPath 返回当前写入的文件路径。已关闭时返回空串。
func (r *Roller) CurrentPath() string {
	var p string
	if err := r.do(func() error {
		p = r.engine.CurrentPath()
		return nil
	}); err != nil {
		return ""
	}
	return p
}

// Write 实现 io.Writer 接口。
//
// 写入前后各做一次轮转检查。轮转失败不阻止写入（降级后 Append
// 返回 [ErrNoFile]）；写入错误原样返回给调用方。
func (r *Roller) Write(p []byte) (n int, err error) {
	err = r.do(func() error {
		r.checkAndRotate()
		var werr error
		n, werr = r.fw.Append(p)
		r.checkAndRotate()
		return werr
	})
	return n, err
}

// Rotate 手动触发一次轮转，返回重开新文件的结果。
func (r *Roller) Rotate() error {
	return r.do(r.rotate)
}

// Close 实现 io.Closer 接口。
//
// 等待正在执行的操作完成后关闭文件句柄。关闭后调用 Write 或
// Rotate 将返回 [ErrClosed]，重复调用 Close 也返回 [ErrClosed]。
//
// 设计决策: Close 使用 Swap 原语标记关闭状态，首次 Close 失败后
// 不重置标记，确保关闭后不会有新的操作到达底层句柄。
func (r *Roller) Close() error {
	if r.closed.Swap(true) {
		return ErrClosed
	}
	close(r.quit)
	<-r.done
	return r.fw.Close()
}

// do 把操作提交到串行队列并等待结果。
func (r *Roller) do(fn func() error) error {
	if r.closed.Load() {
		return ErrClosed
	}
	res := make(chan error, 1)
	select {
	case r.ops <- queuedOp{fn: fn, res: res}:
		return <-res
	case <-r.done:
		return ErrClosed
	}
}

// run 单消费者循环。ops 是无缓冲通道：操作一旦被接收就一定会执行
// 并应答，提交方不会卡在已关闭的队列上。
func (r *Roller) run() {
	defer close(r.done)
	for {
		select {
		case <-r.quit:
			return
		case o := <-r.ops:
			o.res <- o.fn()
		}
	}
}

// checkAndRotate 需要时轮转一次，错误上报后继续。
func (r *Roller) checkAndRotate() {
	if !r.engine.ShouldRotate() {
		return
	}
	if err := r.rotate(); err != nil {
		r.reportError(err)
	}
}

// rotate 执行一次轮转并观测耗时。只能在串行队列内调用。
func (r *Roller) rotate() error {
	start := time.Now()
	err := r.engine.Rotate()
	if r.observe != nil {
		r.observe(time.Since(start))
	}
	return err
}

// reportError 通过回调上报内部错误。
//
// 回调 panic 被 recover 隔离，防止日志错误通知反向中断业务主流程。
func (r *Roller) reportError(err error) {
	if err != nil && r.onError != nil {
		defer func() { _ = recover() }()
		r.onError(err)
	}
}
