package xlumber

import "errors"

var (
	// ErrEmptyFilename 文件名为空。
	ErrEmptyFilename = errors.New("xlumber: filename is required")

	// ErrInvalidMaxSize MaxSizeMB 值无效（必须在 1~10240 范围内）。
	ErrInvalidMaxSize = errors.New("xlumber: invalid MaxSizeMB")

	// ErrInvalidMaxBackups MaxBackups 值无效（必须在 0~1024 范围内）。
	ErrInvalidMaxBackups = errors.New("xlumber: invalid MaxBackups")

	// ErrInvalidMaxAge MaxAgeDays 值无效（必须在 0~3650 范围内）。
	ErrInvalidMaxAge = errors.New("xlumber: invalid MaxAgeDays")

	// ErrNoCleanupPolicy MaxBackups 和 MaxAgeDays 不能同时为 0。
	ErrNoCleanupPolicy = errors.New("xlumber: no cleanup policy configured")

	// ErrInvalidFileMode FileMode 包含非权限位（仅允许 0000~0777）。
	ErrInvalidFileMode = errors.New("xlumber: invalid FileMode")

	// ErrClosed 轮转写入器已关闭。
	ErrClosed = errors.New("xlumber: rotator is closed")
)
