package xscheme

import "errors"

var (
	// ErrUnknownScheme 无法识别的命名方案标识。
	ErrUnknownScheme = errors.New("xscheme: unknown suffix scheme")

	// ErrInvalidGeneration 代数无效（必须 >= 1）。
	ErrInvalidGeneration = errors.New("xscheme: generation must be >= 1")
)
