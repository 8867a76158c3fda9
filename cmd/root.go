// Package cmd 提供 cmetrics 的命令行入口与子命令编排。
package cmd

import (
	"fmt"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"cmetrics/internal/config"
	"cmetrics/internal/features"
	"cmetrics/internal/languages"
	"cmetrics/internal/logging"
	"cmetrics/internal/scanner"
)

// runtimeOptions 存放全局参数以及据此构建的运行时依赖。
type runtimeOptions struct {
	configPath   string
	logLevel     string
	dialectFiles []string

	cfg      *config.Config
	logger   *log.Logger
	registry *languages.Registry
}

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	rootCmd := newRootCmd(version, &runtimeOptions{})
	return rootCmd.Execute()
}

// newRootCmd 创建根命令并注册全部子命令。
func newRootCmd(version string, options *runtimeOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cmetrics",
		Short: "C 家族源码静态度量特征提取工具",
		Long: "cmetrics 对 C/C++ 等 C 家族源码做词法扫描，\n" +
			"输出 McCabe、Halstead 与行数指标组成的 21 维特征向量（PROMISE 列顺序）。",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return options.prepare(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&options.configPath, "config", "", "TOML 配置文件路径")
	rootCmd.PersistentFlags().StringVar(&options.logLevel, "log-level", "", "日志级别: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringArrayVar(&options.dialectFiles, "dialect", nil, "额外方言词汇表文件（.toml/.yaml），可重复")

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newLanguageCmd(options))
	rootCmd.AddCommand(newScanCmd(options))
	rootCmd.AddCommand(newExtractCmd(options))

	return rootCmd
}

// prepare 加载配置、日志与方言注册中心。
// 命令行参数优先级最高，因此在配置加载完成后再覆盖。
func (o *runtimeOptions) prepare(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	cfg.Dialects = append(cfg.Dialects, o.dialectFiles...)

	logger := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: cmd.ErrOrStderr(),
	})

	extra := make([]*languages.Dialect, 0, len(cfg.Dialects))
	for _, path := range cfg.Dialects {
		dialect, loadErr := languages.LoadDialectFile(path)
		if loadErr != nil {
			return loadErr
		}
		logger.Debug().Str("dialect", dialect.Name).Str("path", path).Msg("dialect loaded")
		extra = append(extra, dialect)
	}

	o.cfg = cfg
	o.logger = logger
	o.registry = languages.NewRegistry(extra...)
	return nil
}

// newService 按当前配置创建扫描服务。
func (o *runtimeOptions) newService(workers int) (*scanner.Service, error) {
	service, err := scanner.NewService(o.registry, workers, features.Options{
		Logger:    o.logger,
		CacheSize: o.cfg.Scan.CacheSize,
	})
	if err != nil {
		return nil, fmt.Errorf("create scanner: %w", err)
	}
	return service, nil
}
