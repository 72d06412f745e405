package xroller

import (
	"fmt"
	"os"

	"github.com/omeyang/rollkit/pkg/rotate/xengine"
	"github.com/omeyang/rollkit/pkg/util/xfile"
)

// fileWriter 持有当前日志文件的句柄，实现 [xengine.Writer]。
//
// 不做任何自身的同步：所有调用都来自 Roller 的串行队列（构造期
// 的首次 Reopen 发生在消费者启动之前）。
type fileWriter struct {
	mode    os.FileMode // 日志文件权限
	dirPerm os.FileMode // 自动创建父目录时的权限

	// f 当前句柄。重开失败后为 nil（降级模式），Append 返回
	// ErrNoFile 直到下一次成功的 Reopen。
	f *os.File

	// openFn 可注入的打开函数（nil 时使用 os.OpenFile），仅用于测试
	openFn func(name string, flag int, perm os.FileMode) (*os.File, error)
}

// Reopen 实现 [xengine.Writer]：关闭已有句柄并以追加模式打开新路径。
//
// 任何失败都让句柄保持关闭状态，不会出现半开的降级：旧句柄已经
// 指向被移走的文件，继续写它比丢句柄更糟。
func (w *fileWriter) Reopen(path string) error {
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}

	if err := xfile.EnsureDirWithPerm(path, w.dirPerm); err != nil {
		return fmt.Errorf("%w: %w", xengine.ErrCreateDir, err)
	}

	open := w.openFn
	if open == nil {
		open = os.OpenFile
	}
	//#nosec G304 -- 路径已经过 SanitizePath 净化
	f, err := open(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, w.mode)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", xengine.ErrOpenFile, path, err)
	}
	w.f = f
	return nil
}

// Append 向当前句柄追加数据。
func (w *fileWriter) Append(p []byte) (int, error) {
	if w.f == nil {
		return 0, ErrNoFile
	}
	return w.f.Write(p)
}

// Close 关闭当前句柄（幂等）。
func (w *fileWriter) Close() error {
	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}
