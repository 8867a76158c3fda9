package languages

import (
	"path/filepath"
	"sort"
	"strings"
)

// LanguageDescriptor 用于对外展示方言、后缀及词汇表规模。
type LanguageDescriptor struct {
	Name       string
	Extensions []string
	Operators  int
	Keywords   int
}

// Registry 管理方言注册与后缀映射。
type Registry struct {
	dialects     []*Dialect
	dialectByExt map[string]*Dialect
}

// NewRegistry 注册内置 C/C++ 方言以及额外加载的方言。
// 后注册的方言会覆盖相同后缀的旧映射，同名方言整体替换。
func NewRegistry(extra ...*Dialect) *Registry {
	registry := &Registry{
		dialectByExt: make(map[string]*Dialect),
	}

	registry.register(Builtin())
	for _, dialect := range extra {
		if dialect != nil {
			registry.register(dialect)
		}
	}

	return registry
}

func (r *Registry) register(dialect *Dialect) {
	replaced := false
	for idx, existing := range r.dialects {
		if existing.Name == dialect.Name {
			r.dialects[idx] = dialect
			replaced = true
			break
		}
	}
	if !replaced {
		r.dialects = append(r.dialects, dialect)
	}

	for ext, owner := range r.dialectByExt {
		if owner.Name == dialect.Name {
			delete(r.dialectByExt, ext)
		}
	}
	for _, ext := range dialect.Extensions {
		r.dialectByExt[strings.ToLower(ext)] = dialect
	}
}

// DialectForFile 根据文件后缀查找方言。
func (r *Registry) DialectForFile(path string) (*Dialect, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	dialect, ok := r.dialectByExt[ext]
	return dialect, ok
}

// Lookup 按名称查找方言，同名覆盖后返回最终生效的那个。
func (r *Registry) Lookup(name string) (*Dialect, bool) {
	for _, dialect := range r.dialects {
		if dialect.Name == name {
			return dialect, true
		}
	}
	return nil, false
}

// All 按注册顺序返回全部方言。
func (r *Registry) All() []*Dialect {
	return append([]*Dialect(nil), r.dialects...)
}

// Languages 返回已注册方言清单，按名称排序。
func (r *Registry) Languages() []LanguageDescriptor {
	result := make([]LanguageDescriptor, 0, len(r.dialects))
	for _, dialect := range r.dialects {
		extensions := make([]string, 0, len(dialect.Extensions))
		for _, ext := range dialect.Extensions {
			if r.dialectByExt[ext] == dialect {
				extensions = append(extensions, ext)
			}
		}
		sort.Strings(extensions)
		result = append(result, LanguageDescriptor{
			Name:       dialect.Name,
			Extensions: extensions,
			Operators:  len(dialect.Operators),
			Keywords:   len(dialect.Keywords),
		})
	}

	sort.Slice(result, func(i int, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}
