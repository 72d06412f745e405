package xengine

import (
	"fmt"

	"github.com/omeyang/rollkit/pkg/rotate/xscheme"
)

// 默认配置值。
const (
	// DefaultMaxFileSize 默认单个日志文件最大字节数（100 MB）。
	DefaultMaxFileSize = 100 << 20

	// DefaultMaxArchived 默认保留的归档文件数量。
	DefaultMaxArchived = 7
)

// Strategy 轮转时新当前文件的产生策略。
type Strategy string

// 支持的创建策略。
const (
	// StrategyArchiveInPlace 原地归档：当前文件始终是目标路径，
	// 轮转时移走文件本身并执行保留清理。
	StrategyArchiveInPlace Strategy = "archive_in_place"

	// StrategyCreateNewFile 新建文件：轮转时当前路径推进到新铸造的
	// 名字，不归档、不清理，历史文件无限累积。
	StrategyCreateNewFile Strategy = "create_new_file"
)

// ParseStrategy 解析配置面使用的策略标识。
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyArchiveInPlace, StrategyCreateNewFile:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Config 轮转引擎配置。
//
// 配置在引擎的整个生命周期内固定不变，不支持部分重配置；
// 变更配置的方式是构造新引擎。
type Config struct {
	// Scheme 被替换文件的命名方案。
	Scheme xscheme.Scheme

	// Strategy 新当前文件的产生策略。
	Strategy Strategy

	// MaxFileSize 单个日志文件最大字节数，超过（严格大于）时触发轮转。
	// 必须 > 0。大小是按需采样而非增量统计，单条消息可能使文件
	// 短暂超出上限。
	MaxFileSize int64

	// MaxArchived 保留的归档文件数量，仅在原地归档策略下生效。
	// 0 表示归档后立即清理所有历史文件。
	MaxArchived int
}

// DefaultConfig 返回默认配置：原地归档 + 序号方案。
func DefaultConfig() Config {
	return Config{
		Scheme:      xscheme.SchemeNumbering,
		Strategy:    StrategyArchiveInPlace,
		MaxFileSize: DefaultMaxFileSize,
		MaxArchived: DefaultMaxArchived,
	}
}

// Validate 校验配置。
func (c Config) Validate() error {
	if _, err := xscheme.ParseScheme(string(c.Scheme)); err != nil {
		return err
	}
	if _, err := ParseStrategy(string(c.Strategy)); err != nil {
		return err
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("%w: got %d, want > 0", ErrInvalidMaxFileSize, c.MaxFileSize)
	}
	if c.MaxArchived < 0 {
		return fmt.Errorf("%w: got %d, want >= 0", ErrInvalidMaxArchived, c.MaxArchived)
	}
	return nil
}
