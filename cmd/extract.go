package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cmetrics/internal/languages"
	"cmetrics/internal/model"
	"cmetrics/internal/report"
)

// extractOutput 是 extract 命令的 JSON 输出结构。
type extractOutput struct {
	Path       string      `json:"path"`
	Language   string      `json:"language"`
	Features   []string    `json:"features"`
	Row        [][]float32 `json:"row"`
	Diagnostic string      `json:"diagnostic,omitempty"`
}

// newExtractCmd 创建 extract 子命令。
// 输出单个文件的 1×21 特征行；文件不可读时输出全零向量而不是报错。
// 未注册后缀的文件按注册表中的 C/C++ 方言处理（--dialect 覆盖后以覆盖版本为准）。
//
//	cmetrics extract src/main.cpp
//	cmetrics extract src/main.cpp --format csv
func newExtractCmd(app *runtimeOptions) *cobra.Command {
	format := "json"

	extractCmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "提取单个文件的 21 维特征向量",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			normalized := strings.ToLower(strings.TrimSpace(format))
			if normalized != "json" && normalized != "csv" {
				return errors.New("unsupported format, allowed values: json, csv")
			}

			service, err := app.newService(1)
			if err != nil {
				return err
			}

			extractor, ok := service.ExtractorForFile(args[0])
			if !ok {
				extractor, ok = service.ExtractorForLanguage(languages.Builtin().Name)
			}
			if !ok {
				return fmt.Errorf("no extractor registered for %s", languages.Builtin().Name)
			}

			result := extractor.ExtractFile(args[0])

			if normalized == "csv" {
				return report.PrintCSV(cmd.OutOrStdout(), []model.FileFeatures{result})
			}
			return report.PrintJSON(cmd.OutOrStdout(), extractOutput{
				Path:       result.Path,
				Language:   result.Language,
				Features:   model.FeatureNames[:],
				Row:        result.Vector.Row(),
				Diagnostic: result.Diagnostic,
			})
		},
	}

	extractCmd.Flags().StringVar(&format, "format", format, "输出格式: json 或 csv")

	return extractCmd
}
