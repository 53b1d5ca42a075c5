package cmd

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// newVersionCmd 创建 version 子命令。
// 命令示例：codestat version --verbose
func newVersionCmd(version string) *cobra.Command {
	var verbose bool

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "显示当前版本号",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("codestat version %s\n", version)
			if !verbose {
				return
			}
			cmd.Printf("go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			if revision := buildRevision(); revision != "" {
				cmd.Printf("revision: %s\n", revision)
			}
		},
	}
	versionCmd.Flags().BoolVar(&verbose, "verbose", false, "同时显示 Go 版本与构建修订号")
	return versionCmd
}

func buildRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			return setting.Value
		}
	}
	return ""
}
