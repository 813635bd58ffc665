// xsamplectl 是采样策略的命令行工具。
//
// 用法:
//
//	xsamplectl <命令> [命令参数]
//
// 命令:
//
//	validate <policy>     校验策略文件
//	decide <policy>       对单个事件做采样决策
//	simulate <policy>     批量模拟并报告实际采样率
//	help                  显示帮助信息
//
// 退出码:
//
//	0: 命令执行成功（validate: 策略合法；decide: 结果为 KEEP）
//	1: 命令执行失败（validate: 策略非法；decide: 结果为 DROP）
//	2: 参数错误（缺少策略文件、非法级别名、未知命令等）
//
// 示例:
//
//	xsamplectl validate sampling.yaml
//	xsamplectl decide sampling.yaml --severity warn --trace abc
//	xsamplectl decide sampling.yaml --severity info --tag endpoint=/health
//	xsamplectl simulate sampling.yaml --events 100000 --severity info
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "xsamplectl",
		Usage:   "采样策略命令行工具",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Commands: []*cli.Command{
			createValidateCommand(),
			createDecideCommand(),
			createSimulateCommand(),
		},
		DefaultCommand: "help",
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
	}
}

func run() int {
	app := createApp()

	if err := app.Run(context.Background(), os.Args); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		if _, ok := err.(cli.ExitCoder); ok {
			// ExitErrHandler 已向 stderr 输出错误详情，此处仅设置退出码
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}

	return 0
}
