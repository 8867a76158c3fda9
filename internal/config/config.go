// Package config 负责加载 cmetrics 的运行配置。
// 优先级：默认值 → 配置文件（TOML）→ .env 与环境变量 → 命令行参数（由 cmd 层覆盖）。
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// 环境变量名。
const (
	EnvLogLevel  = "CMETRICS_LOG_LEVEL"
	EnvLogFormat = "CMETRICS_LOG_FORMAT"
	EnvWorkers   = "CMETRICS_WORKERS"
	EnvCacheSize = "CMETRICS_CACHE_SIZE"
	EnvDialects  = "CMETRICS_DIALECTS"
)

// Config 是完整的运行配置。
type Config struct {
	Log      LogConfig  `toml:"log"`
	Scan     ScanConfig `toml:"scan"`
	Dialects []string   `toml:"dialects"` // 额外方言词汇表文件（.toml/.yaml）
}

// LogConfig 描述日志输出。
type LogConfig struct {
	Level  string `toml:"level"`  // trace, debug, info, warn, error
	Format string `toml:"format"` // text 或 json
}

// ScanConfig 描述扫描并发与缓存。
type ScanConfig struct {
	Workers   int `toml:"workers"`
	CacheSize int `toml:"cache_size"` // 按内容哈希缓存的特征条目数，0 关闭缓存
}

// NewDefaultConfig 返回默认配置。
func NewDefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Scan: ScanConfig{
			Workers:   runtime.NumCPU(),
			CacheSize: 1024,
		},
	}
}

// Load 按优先级加载配置，path 为空时跳过配置文件。
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	if strings.TrimSpace(path) != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	// .env 不存在是常态，忽略错误。
	_ = godotenv.Load()

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides 使用环境变量覆盖配置。
func applyEnvOverrides(cfg *Config) error {
	if level := strings.TrimSpace(os.Getenv(EnvLogLevel)); level != "" {
		cfg.Log.Level = level
	}
	if format := strings.TrimSpace(os.Getenv(EnvLogFormat)); format != "" {
		cfg.Log.Format = format
	}

	if raw := strings.TrimSpace(os.Getenv(EnvWorkers)); raw != "" {
		workers, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvWorkers, err)
		}
		cfg.Scan.Workers = workers
	}

	if raw := strings.TrimSpace(os.Getenv(EnvCacheSize)); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvCacheSize, err)
		}
		cfg.Scan.CacheSize = size
	}

	if raw := strings.TrimSpace(os.Getenv(EnvDialects)); raw != "" {
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				cfg.Dialects = append(cfg.Dialects, item)
			}
		}
	}

	return nil
}

// Validate 检查配置取值范围。
func (c *Config) Validate() error {
	if c.Scan.Workers <= 0 {
		return errors.New("workers must be greater than 0")
	}
	if c.Scan.CacheSize < 0 {
		return errors.New("cache_size must not be negative")
	}

	switch strings.ToLower(strings.TrimSpace(c.Log.Format)) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q, allowed values: text, json", c.Log.Format)
	}
	return nil
}
