package xsched

import "errors"

var (
	// ErrNilTarget 轮转目标为 nil。
	ErrNilTarget = errors.New("xsched: rotation target is required")

	// ErrInvalidSpec cron 表达式无法解析。
	ErrInvalidSpec = errors.New("xsched: invalid cron spec")
)
