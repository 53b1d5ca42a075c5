package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"codestat/internal/languages"

	"github.com/spf13/cobra"
)

// newLanguageCmd 创建 language 子命令。
// 命令用于展示已注册语言、对应后缀以及注释标记。
func newLanguageCmd(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "language",
		Short: "展示已注册语言、后缀及注释标记",
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := options.cfg.Registry()
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if _, err := fmt.Fprintln(writer, "LANGUAGE\tEXTENSIONS\tLINE\tBLOCK"); err != nil {
				return err
			}

			for _, item := range registry.Languages() {
				if _, err := fmt.Fprintf(
					writer,
					"%s\t%s\t%s\t%s\n",
					item.Name,
					strings.Join(item.Extensions, ", "),
					orDash(item.Syntax.LinePrefix),
					formatBlocks(item.Syntax.Blocks),
				); err != nil {
					return err
				}
			}

			if _, err := fmt.Fprintf(
				writer,
				"(default)\t*\t%s\t%s\n",
				languages.DefaultSyntax.LinePrefix,
				formatBlocks(languages.DefaultSyntax.Blocks),
			); err != nil {
				return err
			}

			return writer.Flush()
		},
	}
}

func formatBlocks(blocks []languages.BlockDelimiter) string {
	if len(blocks) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		parts = append(parts, block.Start+" "+block.End)
	}
	return strings.Join(parts, ", ")
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
