package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// newLanguageCmd 创建 language 子命令。
// 命令用于展示当前已注册的方言、对应文件后缀以及词汇表规模。
func newLanguageCmd(options *runtimeOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "language",
		Short: "展示已注册方言及后缀",
		RunE: func(cmd *cobra.Command, _ []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if _, err := fmt.Fprintln(writer, "LANGUAGE\tEXTENSIONS\tOPERATORS\tKEYWORDS"); err != nil {
				return err
			}

			for _, item := range options.registry.Languages() {
				if _, err := fmt.Fprintf(
					writer,
					"%s\t%s\t%d\t%d\n",
					item.Name,
					strings.Join(item.Extensions, ", "),
					item.Operators,
					item.Keywords,
				); err != nil {
					return err
				}
			}

			return writer.Flush()
		},
	}
}
