package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/rollkit/pkg/config/xconf"
	"github.com/omeyang/rollkit/pkg/rotate/xengine"
	"github.com/omeyang/rollkit/pkg/rotate/xscan"
	"github.com/omeyang/rollkit/pkg/rotate/xscheme"
	"github.com/omeyang/rollkit/pkg/util/xfile"
)

// usageError 表示参数错误，映射到退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func asUsageError(err error, target **usageError) bool {
	return errors.As(err, target)
}

// onUsageError 把 cli 的标志解析错误统一映射为参数错误（退出码 2）。
func onUsageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return &usageError{msg: err.Error()}
}

// touchWriter 是 CLI 使用的 [xengine.Writer]：轮转后只负责把新的当前
// 文件创建出来，不保持句柄——rollctl 是一次性进程，没有后续写入。
type touchWriter struct {
	mode os.FileMode
}

func (w touchWriter) Reopen(path string) error {
	if err := xfile.EnsureDir(path); err != nil {
		return fmt.Errorf("%w: %w", xengine.ErrCreateDir, err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, w.mode)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", xengine.ErrOpenFile, path, err)
	}
	return f.Close()
}

// createCommands 创建所有子命令。
//
// 子命令各自解析标志，解析错误由各自的 OnUsageError 处理，
// 统一在这里挂接。
func createCommands() []*cli.Command {
	cmds := []*cli.Command{
		createCheckCommand(),
		createStatusCommand(),
		createRotateCommand(),
	}
	for _, c := range cmds {
		c.OnUsageError = onUsageError
	}
	return cmds
}

// rotationFlags rotate/status 共享的覆盖标志。
func rotationFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "scheme",
			Usage: "命名方案 (numbering|timestamp_unique)",
		},
		&cli.StringFlag{
			Name:  "strategy",
			Usage: "创建策略 (archive_in_place|create_new_file)",
		},
		&cli.Int64Flag{
			Name:  "max-size",
			Usage: "单个文件最大字节数",
		},
		&cli.IntFlag{
			Name:  "max-archived",
			Usage: "保留的归档数量",
		},
		&cli.StringFlag{
			Name:  "file-mode",
			Usage: "日志文件权限（八进制字符串，如 640）",
		},
	}
}

func createCheckCommand() *cli.Command {
	return &cli.Command{
		Name:    "check",
		Aliases: []string{"ck"},
		Usage:   "校验配置文件",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.String("config")
			if path == "" {
				return &usageError{msg: "check 需要 --config 指定配置文件"}
			}
			rc, err := loadRotationConfig(path, cmd.String("key"))
			if err != nil {
				return fmt.Errorf("配置非法: %w", err)
			}
			fmt.Fprintf(cmd.Root().Writer,
				"配置合法: path=%s scheme=%s strategy=%s max_size=%d max_archived=%d mode=%s\n",
				rc.Path, rc.SuffixScheme, rc.CreationStrategy,
				rc.MaxFileSizeBytes, rc.MaxArchivedFiles, rc.FileMode)
			return nil
		},
	}
}

func createStatusCommand() *cli.Command {
	return &cli.Command{
		Name:      "status",
		Aliases:   []string{"s"},
		Usage:     "查看目标文件与归档集合的状态",
		ArgsUsage: "<target>",
		Flags:     rotationFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rc, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return cmdStatus(cmd.Root().Writer, rc)
		},
	}
}

func createRotateCommand() *cli.Command {
	return &cli.Command{
		Name:      "rotate",
		Aliases:   []string{"r"},
		Usage:     "对目标文件强制执行一次轮转",
		ArgsUsage: "<target>",
		Flags:     rotationFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rc, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return cmdRotate(cmd.Root().Writer, rc)
		},
	}
}

// loadRotationConfig 从配置文件加载轮转配置。
func loadRotationConfig(path, key string) (xconf.RotationConfig, error) {
	cfg, err := xconf.New(path)
	if err != nil {
		return xconf.RotationConfig{}, err
	}
	return xconf.LoadRotation(cfg, key)
}

// resolveConfig 合并配置文件与命令行标志，标志优先。
// 目标路径取第一个位置参数；没有位置参数时沿用配置文件的 path。
func resolveConfig(cmd *cli.Command) (xconf.RotationConfig, error) {
	var rc xconf.RotationConfig

	if path := cmd.String("config"); path != "" {
		loaded, err := loadRotationConfig(path, cmd.String("key"))
		if err != nil {
			return xconf.RotationConfig{}, fmt.Errorf("配置非法: %w", err)
		}
		rc = loaded
	}

	if target := cmd.Args().First(); target != "" {
		rc.Path = target
	}
	if rc.Path == "" {
		return xconf.RotationConfig{}, &usageError{msg: "缺少目标文件路径（位置参数或配置文件 path）"}
	}
	if v := cmd.String("scheme"); v != "" {
		rc.SuffixScheme = v
	}
	if v := cmd.String("strategy"); v != "" {
		rc.CreationStrategy = v
	}
	// 整型标志用 IsSet 区分"未传"和"显式传 0"：--max-archived 0
	// 是合法语义（归档后立即清空全部历史）
	if cmd.IsSet("max-size") {
		rc.MaxFileSizeBytes = cmd.Int64("max-size")
	}
	if cmd.IsSet("max-archived") {
		rc.MaxArchivedFiles = cmd.Int("max-archived")
	}
	if v := cmd.String("file-mode"); v != "" {
		rc.FileMode = v
	}

	// 填充默认值后整体校验
	rc.ApplyDefaults()
	if err := rc.Validate(); err != nil {
		return xconf.RotationConfig{}, err
	}
	return rc, nil
}

// newEngine 按配置构造引擎，轮转产生的新文件由 touchWriter 创建。
func newEngine(rc xconf.RotationConfig, onError func(error)) (*xengine.Engine, error) {
	perm, err := xfile.ParsePerm(rc.FileMode)
	if err != nil {
		return nil, err
	}
	cfg := xengine.Config{
		Scheme:      xscheme.Scheme(rc.SuffixScheme),
		Strategy:    xengine.Strategy(rc.CreationStrategy),
		MaxFileSize: rc.MaxFileSizeBytes,
		MaxArchived: rc.MaxArchivedFiles,
	}
	return xengine.New(rc.Path, touchWriter{mode: perm}, cfg,
		xengine.WithOnError(onError))
}

// cmdStatus 输出目标文件大小、轮转判定与归档列表。
func cmdStatus(w io.Writer, rc xconf.RotationConfig) error {
	eng, err := newEngine(rc, nil)
	if err != nil {
		return err
	}

	size, err := xscan.Size(eng.CurrentPath())
	switch {
	case err == nil:
		fmt.Fprintf(w, "当前文件: %s (%d 字节, 上限 %d)\n",
			eng.CurrentPath(), size, rc.MaxFileSizeBytes)
	case os.IsNotExist(err):
		fmt.Fprintf(w, "当前文件: %s (不存在)\n", eng.CurrentPath())
	default:
		return err
	}
	fmt.Fprintf(w, "需要轮转: %v\n", eng.ShouldRotate())

	archives, err := xscan.Siblings(eng.Target())
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "归档数量: %d\n", len(archives))
	for _, a := range archives {
		fmt.Fprintf(w, "  %s\n", a)
	}
	return nil
}

// cmdRotate 强制执行一次轮转。
func cmdRotate(w io.Writer, rc xconf.RotationConfig) error {
	var swallowed []error
	eng, err := newEngine(rc, func(err error) { swallowed = append(swallowed, err) })
	if err != nil {
		return err
	}

	if err := eng.Rotate(); err != nil {
		return err
	}
	for _, e := range swallowed {
		fmt.Fprintf(os.Stderr, "警告: %v\n", e)
	}
	fmt.Fprintf(w, "轮转完成: 当前文件 %s\n", eng.CurrentPath())
	return nil
}
