// Package features 实现单文件的静态度量特征提取。
//
// 流水线各阶段依次执行且互不回看：
// 行分类 → 去注释/字面量 → 复杂度计数 → Halstead 计数 → 组装 21 维向量。
// 除文件读取外全部是源码文本的纯函数，同一文本多次提取结果逐位一致。
package features

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/phuslu/log"

	"cmetrics/internal/languages"
	"cmetrics/internal/model"
)

// ErrDecode 表示文件内容不是合法的 UTF-8 文本。
var ErrDecode = errors.New("decode file: content is not valid utf-8")

// contentKey 是缓存键：源码文本的 SHA-256。
type contentKey = [sha256.Size]byte

// Options 是 Extractor 的可选配置。
type Options struct {
	// Logger 接收读取失败的诊断信息，为 nil 时使用 log.DefaultLogger。
	Logger *log.Logger
	// CacheSize 为按内容哈希缓存的条目数，0 表示不缓存。
	CacheSize int
}

// Extractor 绑定一种方言，负责把源码文本转换为特征。
// 构建后只读（缓存自身线程安全），可被多个 worker 并发使用。
type Extractor struct {
	dialect *languages.Dialect
	lexicon *lexicon
	logger  *log.Logger
	cache   *lru.Cache[contentKey, model.Features]
}

// NewExtractor 为方言预编译词汇表并创建提取器。
func NewExtractor(dialect *languages.Dialect, options Options) (*Extractor, error) {
	if dialect == nil {
		return nil, errors.New("dialect is nil")
	}

	lx, err := compileLexicon(dialect)
	if err != nil {
		return nil, fmt.Errorf("compile dialect %s: %w", dialect.Name, err)
	}

	extractor := &Extractor{
		dialect: dialect,
		lexicon: lx,
		logger:  options.Logger,
	}
	if extractor.logger == nil {
		extractor.logger = &log.DefaultLogger
	}

	if options.CacheSize > 0 {
		cache, cacheErr := lru.New[contentKey, model.Features](options.CacheSize)
		if cacheErr != nil {
			return nil, fmt.Errorf("create feature cache: %w", cacheErr)
		}
		extractor.cache = cache
	}

	return extractor, nil
}

// Dialect 返回提取器绑定的方言。
func (e *Extractor) Dialect() *languages.Dialect {
	return e.dialect
}

// Extract 计算一段源码文本的全部指标，任何输入都不会失败。
func (e *Extractor) Extract(source string) model.Features {
	if e.cache == nil {
		return e.compute(source)
	}

	key := sha256.Sum256([]byte(source))
	if cached, ok := e.cache.Get(key); ok {
		return cached
	}

	result := e.compute(source)
	e.cache.Add(key, result)
	return result
}

func (e *Extractor) compute(source string) model.Features {
	lines := ClassifyLines(source)
	clean := Normalize(source)
	complexity := countComplexity(clean, e.lexicon)
	tokens := countTokens(clean, e.lexicon)
	halstead := deriveHalstead(tokens)

	return model.Features{
		Lines:      lines,
		Complexity: complexity,
		Tokens:     tokens,
		Halstead:   halstead,
		Vector:     assembleVector(lines, complexity, tokens, halstead),
	}
}

// ExtractFile 读取文件并提取特征向量。
//
// 读取失败（文件不存在、无权限、非 UTF-8）时不返回错误：
// 记录一条 WARN 诊断，并返回全零向量，Diagnostic 字段携带失败原因。
// 全零向量本身也是合法结果，需要区分读取失败时检查 Degraded。
func (e *Extractor) ExtractFile(path string) model.FileFeatures {
	content, err := os.ReadFile(path)
	if err != nil {
		return e.degrade(path, fmt.Errorf("read file: %w", err))
	}
	if !utf8.Valid(content) {
		return e.degrade(path, ErrDecode)
	}

	return model.FileFeatures{
		Path:     path,
		Language: e.dialect.Name,
		Vector:   e.Extract(normalizeNewlines(string(content))).Vector,
	}
}

// normalizeNewlines 按文本模式读取的规则统一换行：先把 \r\n 换成 \n，再把孤立的 \r 换成 \n。
func normalizeNewlines(source string) string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	return strings.ReplaceAll(source, "\r", "\n")
}

// degrade 生成读取失败时的降级结果。
func (e *Extractor) degrade(path string, err error) model.FileFeatures {
	e.logger.Warn().Str("path", path).Err(err).Msg("cannot read source file, using zero feature vector")

	return model.FileFeatures{
		Path:       path,
		Language:   e.dialect.Name,
		Diagnostic: err.Error(),
	}
}
