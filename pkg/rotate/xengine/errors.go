package xengine

import "errors"

// 构造与配置校验错误。
var (
	// ErrEmptyTarget 目标路径为空。
	ErrEmptyTarget = errors.New("xengine: target path is required")

	// ErrNilWriter 写入器为 nil。
	ErrNilWriter = errors.New("xengine: writer is required")

	// ErrNotAFile 目标路径是一个目录。
	ErrNotAFile = errors.New("xengine: target path is not a file")

	// ErrUnknownStrategy 无法识别的创建策略标识。
	ErrUnknownStrategy = errors.New("xengine: unknown creation strategy")

	// ErrInvalidMaxFileSize MaxFileSize 值无效（必须 > 0）。
	ErrInvalidMaxFileSize = errors.New("xengine: invalid MaxFileSize")

	// ErrInvalidMaxArchived MaxArchived 值无效（必须 >= 0）。
	ErrInvalidMaxArchived = errors.New("xengine: invalid MaxArchived")
)

// 写入器协作方的错误分类。fileWriter（xroller 包）用这些哨兵包装
// 底层系统错误，便于调用方按类别判断。
var (
	// ErrCreateDir 父目录创建失败。
	ErrCreateDir = errors.New("xengine: create parent directory failed")

	// ErrOpenFile 当前文件创建或打开失败。
	ErrOpenFile = errors.New("xengine: open log file failed")
)
