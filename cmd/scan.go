package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"codestat/internal/report"
	"codestat/internal/scanner"

	"github.com/spf13/cobra"
)

// scanOptions 存放 scan 命令的可配置参数。
// 数值参数为 0 时沿用配置文件中的值。
type scanOptions struct {
	format      string
	output      string
	workers     int
	exclude     []string
	topLargest  int
	topSmallest int
}

// newScanCmd 创建 scan 子命令。
// 示例：
//
//	codestat scan .
//	codestat scan ./project --format markdown --output PROJECT_CODE_STATISTICS.md
func newScanCmd(root *rootOptions) *cobra.Command {
	options := scanOptions{
		format: "table",
	}

	scanCmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "扫描目录并输出代码度量信息",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}

			format, err := report.ParseFormat(options.format)
			if err != nil {
				return err
			}

			if options.workers < 0 {
				return errors.New("workers must be greater than 0")
			}
			if options.topLargest < 0 || options.topSmallest < 0 {
				return errors.New("top sizes must be greater than 0")
			}

			serviceOptions := root.cfg.ScanOptions()
			if options.workers > 0 {
				serviceOptions.Workers = options.workers
			}
			if options.topLargest > 0 {
				serviceOptions.Top.Largest = options.topLargest
			}
			if options.topSmallest > 0 {
				serviceOptions.Top.Smallest = options.topSmallest
			}
			serviceOptions.ExcludeDirs = append(serviceOptions.ExcludeDirs, options.exclude...)

			service, err := scanner.NewService(root.cfg.Registry(), serviceOptions)
			if err != nil {
				return err
			}

			result, err := service.ScanPath(target)
			if err != nil {
				return err
			}

			// 终端与文件分别渲染，终端样式只作用于真正的 TTY。
			generatedAt := time.Now()
			if err := report.Render(cmd.OutOrStdout(), format, result, generatedAt); err != nil {
				return err
			}

			outputPath := strings.TrimSpace(options.output)
			if outputPath == "" {
				return nil
			}
			var buffer bytes.Buffer
			if err := report.Render(&buffer, format, result, generatedAt); err != nil {
				return err
			}
			if err := report.WriteFile(outputPath, buffer.Bytes()); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "\nReport exported to %s\n", outputPath)
			return nil
		},
	}

	scanCmd.Flags().StringVar(&options.format, "format", options.format, "输出格式: table、json 或 markdown")
	scanCmd.Flags().StringVar(&options.output, "output", "", "同时把报告写入该文件")
	scanCmd.Flags().IntVar(&options.workers, "workers", 0, "并发 worker 数量，默认使用配置或 CPU 核数")
	scanCmd.Flags().StringArrayVar(&options.exclude, "exclude", nil, "额外排除的目录名或 glob，可重复指定")
	scanCmd.Flags().IntVar(&options.topLargest, "top-largest", 0, "最大文件列表容量")
	scanCmd.Flags().IntVar(&options.topSmallest, "top-smallest", 0, "最小文件列表容量")

	return scanCmd
}
