package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/omeyang/xsample/internal/tracehash"
	"github.com/omeyang/xsample/pkg/config/xpolicyconf"
	"github.com/omeyang/xsample/pkg/sampling/xdecider"
	"github.com/omeyang/xsample/pkg/sampling/xevent"
)

// exitError 表示需要非零退出码但已完成输出的场景。
// 命令内部已完成所有输出，main 只需设置退出码。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// usageError 表示参数错误，退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// policyArg 提取策略文件路径参数。
func policyArg(cmd *cli.Command) (string, error) {
	path := cmd.Args().First()
	if path == "" {
		return "", &usageError{msg: "缺少策略文件路径"}
	}
	return path, nil
}

// createValidateCommand 创建 validate 子命令。
func createValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"v"},
		Usage:     "校验策略文件",
		ArgsUsage: "<policy>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			path, err := policyArg(cmd)
			if err != nil {
				return err
			}

			if _, err := xpolicyconf.Load(path); err != nil {
				fmt.Fprintf(os.Stderr, "策略非法: %v\n", err)
				return &exitError{code: 1}
			}
			fmt.Printf("策略合法: %s\n", path)
			return nil
		},
	}
}

// createDecideCommand 创建 decide 子命令。
func createDecideCommand() *cli.Command {
	return &cli.Command{
		Name:      "decide",
		Aliases:   []string{"d"},
		Usage:     "对单个事件做采样决策",
		ArgsUsage: "<policy>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "severity",
				Aliases: []string{"s"},
				Usage:   "事件严重级别（trace/debug/info/warn/error/fatal）",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "trace",
				Aliases: []string{"t"},
				Usage:   "trace ID（缺省随机生成）",
			},
			&cli.StringSliceFlag{
				Name:  "tag",
				Usage: "事件标签，格式 key=value，可重复",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			path, err := policyArg(cmd)
			if err != nil {
				return err
			}

			sev, err := xevent.ParseSeverity(cmd.String("severity"))
			if err != nil {
				return &usageError{msg: err.Error()}
			}

			tags, err := parseTags(cmd.StringSlice("tag"))
			if err != nil {
				return err
			}

			traceID := cmd.String("trace")
			if traceID == "" {
				traceID = uuid.NewString()
			}

			decider, err := newDecider(path)
			if err != nil {
				return err
			}

			ev := xevent.Event{Severity: sev, TraceID: traceID, Tags: tags}
			decision := decider.Decide(ev)

			fmt.Printf("%s (severity=%s trace=%s hash=%.6f)\n",
				decision, sev, traceID, tracehash.Normalize(traceID))

			if decision == xdecider.Drop {
				return &exitError{code: 1}
			}
			return nil
		},
	}
}

// createSimulateCommand 创建 simulate 子命令。
func createSimulateCommand() *cli.Command {
	return &cli.Command{
		Name:      "simulate",
		Aliases:   []string{"sim"},
		Usage:     "批量模拟并报告实际采样率",
		ArgsUsage: "<policy>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "events",
				Aliases: []string{"n"},
				Usage:   "模拟事件数量",
				Value:   10000,
			},
			&cli.StringFlag{
				Name:    "severity",
				Aliases: []string{"s"},
				Usage:   "只模拟指定级别（缺省轮询所有级别）",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			path, err := policyArg(cmd)
			if err != nil {
				return err
			}

			total := cmd.Int("events")
			if total <= 0 {
				return &usageError{msg: "events 必须 >= 1"}
			}

			severities := xevent.Severities()
			if name := cmd.String("severity"); name != "" {
				sev, err := xevent.ParseSeverity(name)
				if err != nil {
					return &usageError{msg: err.Error()}
				}
				severities = []xevent.Severity{sev}
			}

			decider, err := newDecider(path)
			if err != nil {
				return err
			}

			// 每个事件独立的随机 trace ID，模拟真实流量分布
			for i := 0; i < total; i++ {
				decider.Decide(xevent.Event{
					Severity: severities[i%len(severities)],
					TraceID:  uuid.NewString(),
				})
			}

			printReport(decider, severities)
			return nil
		},
	}
}

// newDecider 加载策略文件并创建决策器。
func newDecider(path string) (*xdecider.Decider, error) {
	policy, err := xpolicyconf.Load(path)
	if err != nil {
		return nil, fmt.Errorf("加载策略失败: %w", err)
	}
	decider, err := xdecider.New(policy)
	if err != nil {
		return nil, fmt.Errorf("创建决策器失败: %w", err)
	}
	return decider, nil
}

// parseTags 解析 key=value 形式的标签参数。
func parseTags(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	tags := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, &usageError{msg: fmt.Sprintf("非法标签 %q，格式应为 key=value", pair)}
		}
		tags[key] = value
	}
	return tags, nil
}

// printReport 输出按级别的采样率报表。
func printReport(decider *xdecider.Decider, severities []xevent.Severity) {
	snap := decider.Stats().Snapshot()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SEVERITY\tSEEN\tKEPT\tRATE")
	for _, sev := range severities {
		count := snap.BySeverity(sev)
		fmt.Fprintf(w, "%s\t%d\t%d\t%.4f\n", sev, count.Seen, count.Kept, count.KeptRate())
	}
	_ = w.Flush()
}
