// Package logging 基于 phuslu/log 构建 cmetrics 的结构化日志。
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"
)

// Options 描述日志级别与输出格式。
type Options struct {
	Level  string
	Format string
	Writer io.Writer
}

// New 创建日志实例。
// Format 为 json 时输出 JSON 行，其余情况输出适合终端阅读的文本；默认写入 stderr，
// 保证 stdout 只承载扫描结果。
func New(options Options) *log.Logger {
	writer := options.Writer
	if writer == nil {
		writer = os.Stderr
	}

	logger := &log.Logger{
		Level:      parseLevel(options.Level),
		TimeFormat: "15:04:05",
	}

	if strings.EqualFold(strings.TrimSpace(options.Format), "json") {
		logger.Writer = &log.IOWriter{Writer: writer}
	} else {
		logger.Writer = &log.ConsoleWriter{Writer: writer}
	}

	return logger
}

// Discard 返回丢弃全部输出的日志实例，主要用于测试。
func Discard() *log.Logger {
	return &log.Logger{
		Level:  log.PanicLevel,
		Writer: &log.IOWriter{Writer: io.Discard},
	}
}

// parseLevel 把配置中的级别字符串转换为 log.Level，无法识别时回退到 info。
func parseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
