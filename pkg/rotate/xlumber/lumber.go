package xlumber

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/omeyang/rollkit/pkg/rotate/xroller"
	"github.com/omeyang/rollkit/pkg/util/xfile"
)

// 默认配置与上限。
const (
	// DefaultMaxSizeMB 默认单个日志文件最大大小（MB）。
	DefaultMaxSizeMB = 500

	// DefaultMaxBackups 默认保留的备份文件数量。
	DefaultMaxBackups = 7

	// DefaultMaxAgeDays 默认保留备份的天数。
	DefaultMaxAgeDays = 30

	maxSizeMBLimit  = 10240 // 10 GB
	maxBackupsLimit = 1024
	maxAgeDaysLimit = 3650 // 约 10 年
)

// config xlumber 构造配置。
type config struct {
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
	compress   bool
	localTime  bool
	fileMode   os.FileMode // 0 表示沿用 lumberjack 默认值 0600
	onError    func(error)
}

// Option 配置选项函数。
type Option func(*config)

// WithMaxSize 设置单个日志文件最大大小（MB）。
func WithMaxSize(mb int) Option {
	return func(c *config) { c.maxSizeMB = mb }
}

// WithMaxBackups 设置保留的备份文件数量，0 表示不按数量清理。
func WithMaxBackups(n int) Option {
	return func(c *config) { c.maxBackups = n }
}

// WithMaxAge 设置保留备份的天数，0 表示不按天数清理。
func WithMaxAge(days int) Option {
	return func(c *config) { c.maxAgeDays = days }
}

// WithCompress 设置是否 gzip 压缩备份文件。
func WithCompress(compress bool) Option {
	return func(c *config) { c.compress = compress }
}

// WithLocalTime 设置备份文件名是否使用本地时间（默认 UTC）。
func WithLocalTime(local bool) Option {
	return func(c *config) { c.localTime = local }
}

// WithFileMode 设置日志文件权限。
//
// lumberjack 不暴露权限配置且固定以 0600 创建文件，此选项通过事后
// chmod 调整，存在短暂窗口文件权限为 0600。
func WithFileMode(mode os.FileMode) Option {
	return func(c *config) { c.fileMode = mode }
}

// WithOnError 设置内部错误（如权限调整失败）的回调。
//
// 回调不得向同一 Rotator 写入数据，否则产生递归。
func WithOnError(fn func(error)) Option {
	return func(c *config) { c.onError = fn }
}

// lumberRotator 基于 lumberjack 的 [xroller.Rotator] 实现。
type lumberRotator struct {
	logger  *lumberjack.Logger
	path    string
	mode    os.FileMode
	onError func(error)

	closed atomic.Bool

	// modeOK 当前文件权限已验证。轮转后 lumberjack 以 0600 重建
	// 文件，需要清零重查。mu 保护 Stat+Chmod 的两步操作。
	modeOK atomic.Bool
	mu     sync.Mutex

	// 可注入的系统调用（nil 时使用 os 标准库），仅用于测试
	statFn  func(string) (os.FileInfo, error)
	chmodFn func(string, os.FileMode) error
}

// New 创建基于 lumberjack 的日志轮转写入器。
//
// 路径经 [xfile.SanitizePath] 净化，父目录不存在时自动创建（0750）。
func New(filename string, opts ...Option) (xroller.Rotator, error) {
	if filename == "" {
		return nil, ErrEmptyFilename
	}

	cfg := config{
		maxSizeMB:  DefaultMaxSizeMB,
		maxBackups: DefaultMaxBackups,
		maxAgeDays: DefaultMaxAgeDays,
		compress:   true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	safePath, err := xfile.SanitizePath(filename)
	if err != nil {
		return nil, err
	}
	if err := xfile.EnsureDir(safePath); err != nil {
		return nil, err
	}

	return &lumberRotator{
		logger: &lumberjack.Logger{
			Filename:   safePath,
			MaxSize:    cfg.maxSizeMB,
			MaxBackups: cfg.maxBackups,
			MaxAge:     cfg.maxAgeDays,
			Compress:   cfg.compress,
			LocalTime:  cfg.localTime,
		},
		path:    safePath,
		mode:    cfg.fileMode,
		onError: cfg.onError,
	}, nil
}

func (c *config) validate() error {
	if c.maxSizeMB <= 0 || c.maxSizeMB > maxSizeMBLimit {
		return fmt.Errorf("%w: got %d, want 1~%d", ErrInvalidMaxSize, c.maxSizeMB, maxSizeMBLimit)
	}
	if c.maxBackups < 0 || c.maxBackups > maxBackupsLimit {
		return fmt.Errorf("%w: got %d, want 0~%d", ErrInvalidMaxBackups, c.maxBackups, maxBackupsLimit)
	}
	if c.maxAgeDays < 0 || c.maxAgeDays > maxAgeDaysLimit {
		return fmt.Errorf("%w: got %d, want 0~%d", ErrInvalidMaxAge, c.maxAgeDays, maxAgeDaysLimit)
	}
	if c.maxBackups == 0 && c.maxAgeDays == 0 {
		return fmt.Errorf("%w: MaxBackups and MaxAgeDays cannot both be 0", ErrNoCleanupPolicy)
	}
	if c.fileMode&^os.FileMode(0o777) != 0 {
		return fmt.Errorf("%w: got %04o, only permission bits (0000~0777) allowed",
			ErrInvalidFileMode, c.fileMode)
	}
	return nil
}

// Write 实现 io.Writer 接口。
func (r *lumberRotator) Write(p []byte) (int, error) {
	if r.closed.Load() {
		return 0, ErrClosed
	}

	n, err := r.logger.Write(p)
	if err != nil {
		// Write 与 Close 存在 TOCTOU 窗口：前置检查通过后 Close 可能
		// 已经完成。后置检查保证调用者始终得到 ErrClosed 而非底层
		// I/O 错误。
		if r.closed.Load() {
			return n, ErrClosed
		}
		return n, err
	}

	if r.mode != 0 && !r.modeOK.Load() {
		r.reportError(r.ensureMode())
	}
	return n, nil
}

// Rotate 手动触发轮转。
func (r *lumberRotator) Rotate() error {
	if r.closed.Load() {
		return ErrClosed
	}
	if err := r.logger.Rotate(); err != nil {
		if r.closed.Load() {
			return ErrClosed
		}
		return err
	}
	if r.mode != 0 {
		// 轮转后的新文件是 lumberjack 默认权限，需要重新调整
		r.modeOK.Store(false)
		r.reportError(r.ensureMode())
	}
	return nil
}

// Close 实现 io.Closer 接口，重复调用返回 [ErrClosed]。
func (r *lumberRotator) Close() error {
	if r.closed.Swap(true) {
		return ErrClosed
	}
	return r.logger.Close()
}

// ensureMode 确保日志文件具有期望的权限。
func (r *lumberRotator) ensureMode() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stat := r.statFn
	if stat == nil {
		stat = os.Stat
	}
	info, err := stat(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			// lumberjack 延迟创建文件，等首次写入后再查
			return nil
		}
		return err
	}

	if info.Mode().Perm() != r.mode {
		chmod := r.chmodFn
		if chmod == nil {
			chmod = os.Chmod
		}
		//#nosec G302 -- 日志文件权限由调用方配置决定
		if err := chmod(r.path, r.mode); err != nil {
			return err
		}
	}
	r.modeOK.Store(true)
	return nil
}

// reportError 通过回调上报内部错误，panic 被 recover 隔离。
func (r *lumberRotator) reportError(err error) {
	if err != nil && r.onError != nil {
		defer func() { _ = recover() }()
		r.onError(err)
	}
}
