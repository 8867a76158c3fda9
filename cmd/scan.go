package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cmetrics/internal/report"
)

// scanOptions 存放 scan 命令的可配置参数。
type scanOptions struct {
	format  string
	output  string
	workers int
}

// newScanCmd 创建 scan 子命令。
// 示例：
//
//	cmetrics scan .
//	cmetrics scan ./project --format csv --output features.csv
func newScanCmd(app *runtimeOptions) *cobra.Command {
	options := scanOptions{
		format: "table",
	}

	scanCmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "扫描目录或文件并输出每个文件的特征向量",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(strings.TrimSpace(options.format))
			if format != "table" && format != "json" && format != "csv" {
				return errors.New("unsupported format, allowed values: table, json, csv")
			}

			workers := app.cfg.Scan.Workers
			if cmd.Flags().Changed("workers") {
				workers = options.workers
			}
			if workers <= 0 {
				return errors.New("workers must be greater than 0")
			}

			service, err := app.newService(workers)
			if err != nil {
				return err
			}

			result, err := service.ScanPath(args[0])
			if err != nil {
				return err
			}

			switch format {
			case "table":
				return report.PrintTable(cmd.OutOrStdout(), result)
			case "json":
				if err := report.PrintJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
			case "csv":
				if err := report.PrintCSV(cmd.OutOrStdout(), result.Files); err != nil {
					return err
				}
			}

			outputPath := strings.TrimSpace(options.output)
			if outputPath == "" {
				return nil
			}
			if err := report.WriteFile(outputPath, format, result); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "\n%s exported to %s\n", strings.ToUpper(format), outputPath)
			return nil
		},
	}

	scanCmd.Flags().StringVar(&options.format, "format", options.format, "输出格式: table、json 或 csv")
	scanCmd.Flags().StringVar(&options.output, "output", "", "json/csv 导出文件路径，为空时不导出")
	scanCmd.Flags().IntVar(&options.workers, "workers", 0, "并发 worker 数量，默认取配置值")

	return scanCmd
}
