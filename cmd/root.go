// Package cmd 提供 codestat 的命令行入口与子命令编排。
package cmd

import (
	"os"

	"codestat/internal/config"
	"codestat/internal/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootOptions 存放全局参数以及在 PersistentPreRunE 中加载的配置。
type rootOptions struct {
	configPath string
	debug      bool
	debugFile  string
	cfg        *config.Config
}

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	// .env 不存在时忽略错误。
	_ = godotenv.Load()

	rootCmd := newRootCmd(version)
	// 命令失败时 PersistentPostRunE 不会执行，这里兜底关闭日志文件。
	defer func() { _ = logging.Close() }()
	return rootCmd.Execute()
}

// newRootCmd 创建根命令并注册全部子命令。
func newRootCmd(version string) *cobra.Command {
	options := &rootOptions{
		configPath: os.Getenv("CODESTAT_CONFIG"),
	}

	rootCmd := &cobra.Command{
		Use:   "codestat",
		Short: "项目代码行统计工具",
		Long: "codestat 遍历目录树，把每一行划分为 code/comment/blank，\n" +
			"并按文件、目录、后缀汇总统计，支持 table/json/markdown 输出。",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logging.Initialize(options.debug, options.debugFile, cmd.ErrOrStderr()); err != nil {
				return err
			}

			cfg, err := config.Load(options.configPath)
			if err != nil {
				return err
			}
			options.cfg = cfg
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return logging.Close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&options.configPath, "config", options.configPath, "YAML 配置文件路径（默认读取 CODESTAT_CONFIG）")
	rootCmd.PersistentFlags().BoolVar(&options.debug, "debug", false, "输出 debug 日志到 stderr")
	rootCmd.PersistentFlags().StringVar(&options.debugFile, "debug-file", "", "debug 日志写入的文件路径")

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newLanguageCmd(options))
	rootCmd.AddCommand(newScanCmd(options))

	return rootCmd
}
