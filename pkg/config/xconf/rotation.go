package xconf

import (
	"fmt"
	"os"

	"github.com/omeyang/rollkit/pkg/rotate/xengine"
	"github.com/omeyang/rollkit/pkg/rotate/xroller"
	"github.com/omeyang/rollkit/pkg/rotate/xscheme"
	"github.com/omeyang/rollkit/pkg/util/xfile"
)

// RotationConfig 轮转写入器的文件配置。
//
// 方案、策略和权限在配置面都是字符串，加载后必须经 Validate 解析
// 校验；零值字段回落到默认值（见 [RotationConfig.ApplyDefaults]）。
type RotationConfig struct {
	// Path 日志目标路径。
	Path string `koanf:"path"`

	// SuffixScheme 命名方案："numbering" 或 "timestamp_unique"。
	SuffixScheme string `koanf:"suffix_scheme"`

	// CreationStrategy 创建策略："archive_in_place" 或 "create_new_file"。
	CreationStrategy string `koanf:"creation_strategy"`

	// MaxFileSizeBytes 单个日志文件最大字节数。
	MaxFileSizeBytes int64 `koanf:"max_file_size_bytes"`

	// MaxArchivedFiles 保留的归档文件数量（仅原地归档策略生效）。
	MaxArchivedFiles int `koanf:"max_archived_files"`

	// FileMode 日志文件权限的八进制字符串（如 "640"）。
	FileMode string `koanf:"file_mode"`
}

// LoadRotation 从配置实例的指定路径加载并校验轮转配置。
//
// path 为空串时读取整个配置树；缺省字段填充默认值。
func LoadRotation(cfg Config, path string) (RotationConfig, error) {
	var rc RotationConfig
	if err := cfg.Unmarshal(path, &rc); err != nil {
		return RotationConfig{}, err
	}
	rc.ApplyDefaults()
	if err := rc.Validate(); err != nil {
		return RotationConfig{}, err
	}
	return rc, nil
}

// ApplyDefaults 为零值字段填充默认值。
func (rc *RotationConfig) ApplyDefaults() {
	if rc.SuffixScheme == "" {
		rc.SuffixScheme = string(xscheme.SchemeNumbering)
	}
	if rc.CreationStrategy == "" {
		rc.CreationStrategy = string(xengine.StrategyArchiveInPlace)
	}
	if rc.MaxFileSizeBytes == 0 {
		rc.MaxFileSizeBytes = xengine.DefaultMaxFileSize
	}
	if rc.FileMode == "" {
		rc.FileMode = "600"
	}
}

// Validate 解析并校验所有字符串字段。
func (rc RotationConfig) Validate() error {
	if rc.Path == "" {
		return xroller.ErrEmptyFilename
	}
	if _, err := xscheme.ParseScheme(rc.SuffixScheme); err != nil {
		return err
	}
	if _, err := xengine.ParseStrategy(rc.CreationStrategy); err != nil {
		return err
	}
	if _, err := xfile.ParsePerm(rc.FileMode); err != nil {
		return err
	}
	if rc.MaxFileSizeBytes <= 0 {
		return fmt.Errorf("%w: got %d, want > 0", xengine.ErrInvalidMaxFileSize, rc.MaxFileSizeBytes)
	}
	if rc.MaxArchivedFiles < 0 {
		return fmt.Errorf("%w: got %d, want >= 0", xengine.ErrInvalidMaxArchived, rc.MaxArchivedFiles)
	}
	return nil
}

// fileMode 解析八进制权限字符串，必须在 Validate 之后调用。
func (rc RotationConfig) fileMode() os.FileMode {
	perm, err := xfile.ParsePerm(rc.FileMode)
	if err != nil {
		return xroller.DefaultFileMode
	}
	return perm
}

// Options 把配置转换成 xroller 构造选项。
//
// 调用前必须先通过 Validate（LoadRotation 和 Build 都已内置校验）。
// 直接对未校验的配置取选项时，非法方案和策略会在 xroller.New 的
// 配置校验中报错，但非法的 FileMode 字符串会静默回落到
// [xroller.DefaultFileMode]，不会产生错误。
func (rc RotationConfig) Options() []xroller.Option {
	return []xroller.Option{
		xroller.WithScheme(xscheme.Scheme(rc.SuffixScheme)),
		xroller.WithStrategy(xengine.Strategy(rc.CreationStrategy)),
		xroller.WithMaxSize(rc.MaxFileSizeBytes),
		xroller.WithMaxArchived(rc.MaxArchivedFiles),
		xroller.WithFileMode(rc.fileMode()),
	}
}

// Build 按配置构造轮转写入器，extra 选项（回调、观测）追加在配置
// 选项之后。
func (rc RotationConfig) Build(extra ...xroller.Option) (*xroller.Roller, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	return xroller.New(rc.Path, append(rc.Options(), extra...)...)
}
