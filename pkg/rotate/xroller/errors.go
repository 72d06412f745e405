package xroller

import "errors"

var (
	// ErrEmptyFilename 文件名为空。
	ErrEmptyFilename = errors.New("xroller: filename is required")

	// ErrInvalidFileMode FileMode 包含非权限位（仅允许低 9 位 0000~0777）。
	ErrInvalidFileMode = errors.New("xroller: invalid FileMode")

	// ErrClosed 轮转写入器已关闭。
	ErrClosed = errors.New("xroller: roller is closed")

	// ErrNoFile 当前没有打开的日志文件（上一次重开失败后的降级模式）。
	ErrNoFile = errors.New("xroller: no open log file")
)
