// rollctl 是日志轮转的命令行运维工具。
//
// 用法:
//
//	rollctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config   轮转配置文件路径（YAML/JSON）
//	-k, --key      配置树中轮转段的键路径 (默认: rotation)
//
// 命令:
//
//	check                校验配置文件，非法配置以退出码 1 失败
//	status <target>      查看目标文件与归档集合的状态
//	rotate <target>      对目标文件强制执行一次轮转
//	help                 显示帮助信息
//
// 命令行标志优先于配置文件；两者都缺省时使用默认值
// （numbering + archive_in_place）。
//
// 退出码:
//
//	0: 命令执行成功
//	1: 命令执行失败（配置非法、轮转失败等）
//	2: 参数错误（缺少必需参数、未知命令等）
//
// 示例:
//
//	rollctl check -c /etc/rollkit/config.yaml
//	rollctl status /var/log/app/app.log
//	rollctl rotate /var/log/app/app.log --max-archived 5
//	rollctl -c config.yaml rotate /var/log/app/app.log
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args))
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "rollctl",
		Usage:   "日志轮转运维工具",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "轮转配置文件路径（YAML/JSON）",
			},
			&cli.StringFlag{
				Name:    "key",
				Aliases: []string{"k"},
				Usage:   "配置树中轮转段的键路径",
				Value:   "rotation",
			},
		},
		Commands:       createCommands(),
		DefaultCommand: "help",
		OnUsageError:   onUsageError,
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
	}
}

func run(args []string) int {
	app := createApp()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, args); err != nil {
		var usageErr *usageError
		if ok := asUsageError(err, &usageErr); ok {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		var coder cli.ExitCoder
		if errors.As(err, &coder) {
			// ExitErrHandler 已输出错误详情，退出码以错误自带的为准
			return coder.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}
	return 0
}
