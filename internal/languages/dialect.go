// Package languages 管理 C 家族方言的词汇表配置与后缀注册。
// 词汇表是静态配置：进程启动时加载一次，之后只读，可被多个 goroutine 共享。
package languages

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidDialect 表示词汇表内容不完整。
	ErrInvalidDialect = errors.New("invalid dialect")
	// ErrUnsupportedFormat 表示词汇表文件格式无法识别。
	ErrUnsupportedFormat = errors.New("unsupported dialect format")
)

//go:embed cpp.toml
var builtinCPP []byte

// builtinDialect 在包初始化时解析内置 C/C++ 词汇表。
// 内置文件随二进制一起发布，解析失败属于编程错误，直接 panic。
var builtinDialect *Dialect

func init() { builtinDialect = mustParseBuiltin() }

// Dialect 描述一种 C 家族方言的固定词汇表。
//
// 约束说明：
// - Operators 中纯字母的项按整词、大小写敏感匹配，其余按字面符号匹配
// - Keywords 永远不会被计为操作数（比较时忽略大小写）
// - DecisionKeywords 用于圈复杂度统计（整词、忽略大小写）
type Dialect struct {
	Name             string   `toml:"name" yaml:"name"`
	Extensions       []string `toml:"extensions" yaml:"extensions"`
	Operators        []string `toml:"operators" yaml:"operators"`
	Keywords         []string `toml:"keywords" yaml:"keywords"`
	DecisionKeywords []string `toml:"decision_keywords" yaml:"decision_keywords"`
}

// Builtin 返回内置的 C/C++ 方言。
func Builtin() *Dialect {
	return builtinDialect
}

// ParseDialect 按 format（toml 或 yaml）解析词汇表内容并校验。
func ParseDialect(data []byte, format string) (*Dialect, error) {
	dialect := &Dialect{}

	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "toml":
		if err := toml.Unmarshal(data, dialect); err != nil {
			return nil, fmt.Errorf("decode toml dialect: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, dialect); err != nil {
			return nil, fmt.Errorf("decode yaml dialect: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := dialect.Validate(); err != nil {
		return nil, err
	}
	return dialect, nil
}

// LoadDialectFile 从磁盘读取词汇表文件，格式由后缀决定。
func LoadDialectFile(path string) (*Dialect, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dialect file: %w", err)
	}

	dialect, err := ParseDialect(content, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("load dialect %s: %w", path, err)
	}
	return dialect, nil
}

// Validate 检查词汇表是否具备计算所需的最小内容，并规范化后缀。
func (d *Dialect) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidDialect)
	}
	if len(d.Extensions) == 0 {
		return fmt.Errorf("%w: %s has no extensions", ErrInvalidDialect, d.Name)
	}
	if len(d.Operators) == 0 {
		return fmt.Errorf("%w: %s has no operators", ErrInvalidDialect, d.Name)
	}

	for idx, ext := range d.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			return fmt.Errorf("%w: %s has an empty extension", ErrInvalidDialect, d.Name)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		d.Extensions[idx] = ext
	}

	for _, op := range d.Operators {
		if op == "" {
			return fmt.Errorf("%w: %s has an empty operator", ErrInvalidDialect, d.Name)
		}
	}

	// 未声明判定关键字时沿用内置集合，否则圈复杂度恒为 1。
	if len(d.DecisionKeywords) == 0 && builtinDialect != nil {
		d.DecisionKeywords = append([]string(nil), builtinDialect.DecisionKeywords...)
	}
	return nil
}

func mustParseBuiltin() *Dialect {
	dialect, err := ParseDialect(builtinCPP, "toml")
	if err != nil {
		panic(fmt.Sprintf("builtin dialect: %v", err))
	}
	return dialect
}
