// Package report 提供 cmetrics 的输出能力。
// 当前实现支持 table 控制台格式、JSON 格式与 CSV 格式（均可导出文件）。
// CSV 列顺序与特征槽位一致，可以直接作为分类器的批量输入。
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"cmetrics/internal/model"
)

// PrintTable 使用表格展示扫描结果，每个文件一行 21 列。
func PrintTable(writer io.Writer, result model.ScanResult) error {
	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "SCANNED PATH\t%s\n\n", result.ScannedPath); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(tw, "FILE\t%s\n", strings.Join(model.FeatureNames[:], "\t")); err != nil {
		return err
	}
	for _, item := range result.Files {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", item.Path, strings.Join(formatVector(item.Vector), "\t")); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(
		tw,
		"\nFILES\tLOC\tCODE\tCOMMENT\tBLANK\tMAX v(g)\n%d\t%d\t%d\t%d\t%d\t%d\n",
		result.Summary.Files,
		result.Summary.Total,
		result.Summary.Code,
		result.Summary.Comment,
		result.Summary.Blank,
		result.Summary.MaxCyclomatic,
	); err != nil {
		return err
	}

	if len(result.Errors) > 0 {
		if _, err := fmt.Fprintln(tw, "\nERROR FILE\tMESSAGE"); err != nil {
			return err
		}
		for _, item := range result.Errors {
			if _, err := fmt.Fprintf(tw, "%s\t%s\n", item.Path, item.Error); err != nil {
				return err
			}
		}
	}

	return tw.Flush()
}

// PrintJSON 把任意结果按易读 JSON 输出到 writer。
func PrintJSON(writer io.Writer, value any) error {
	content, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// PrintCSV 输出带表头的 CSV：path 列加 21 个特征列。
func PrintCSV(writer io.Writer, files []model.FileFeatures) error {
	csvWriter := csv.NewWriter(writer)

	header := append([]string{"path"}, model.FeatureNames[:]...)
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, item := range files {
		record := append([]string{item.Path}, formatVector(item.Vector)...)
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteFile 将结果导出到指定路径，format 取 json 或 csv。
// 如果目录不存在会自动创建。
func WriteFile(path string, format string, result model.ScanResult) error {
	var builder strings.Builder

	switch format {
	case "json":
		if err := PrintJSON(&builder, result); err != nil {
			return err
		}
	case "csv":
		if err := PrintCSV(&builder, result.Files); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}

	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}

	if writeErr := os.WriteFile(path, []byte(builder.String()), 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}

// formatVector 把特征值格式化为最短可还原的 float32 文本。
func formatVector(vector model.FeatureVector) []string {
	values := make([]string, 0, model.FeatureLength)
	for _, value := range vector {
		values = append(values, strconv.FormatFloat(float64(value), 'g', -1, 32))
	}
	return values
}
