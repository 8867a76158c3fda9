package features

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"cmetrics/internal/languages"
)

var (
	identifierPattern = regexp.MustCompile(`\b[a-zA-Z_][a-zA-Z0-9_]*\b`)
	numberPattern     = regexp.MustCompile(`\b\d+\.?\d*\b`)
	logicalPattern    = regexp.MustCompile(`&&|\|\|`)
	ternaryPattern    = regexp.MustCompile(`\?`)
)

// operatorPattern 是单个运算符及其预编译匹配规则。
type operatorPattern struct {
	token   string
	pattern *regexp.Regexp
}

// lexicon 是方言词汇表的编译结果，构建后只读。
type lexicon struct {
	operators []operatorPattern
	keywords  map[string]struct{}
	decisions []*regexp.Regexp
}

// compileLexicon 为方言预编译全部正则。
// 纯字母运算符（new、sizeof 等）按整词匹配，符号运算符按字面匹配。
func compileLexicon(dialect *languages.Dialect) (*lexicon, error) {
	lx := &lexicon{
		operators: make([]operatorPattern, 0, len(dialect.Operators)),
		keywords:  make(map[string]struct{}, len(dialect.Keywords)),
		decisions: make([]*regexp.Regexp, 0, len(dialect.DecisionKeywords)),
	}

	for _, op := range dialect.Operators {
		expr := regexp.QuoteMeta(op)
		if isAlphabetic(op) {
			expr = `\b` + expr + `\b`
		}
		pattern, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("compile operator %q: %w", op, err)
		}
		lx.operators = append(lx.operators, operatorPattern{token: op, pattern: pattern})
	}

	for _, kw := range dialect.Keywords {
		lx.keywords[strings.ToLower(kw)] = struct{}{}
	}

	for _, kw := range dialect.DecisionKeywords {
		pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("compile decision keyword %q: %w", kw, err)
		}
		lx.decisions = append(lx.decisions, pattern)
	}

	return lx, nil
}

// isKeyword 忽略大小写判断单词是否为保留字。
func (lx *lexicon) isKeyword(word string) bool {
	_, ok := lx.keywords[strings.ToLower(word)]
	return ok
}

func isAlphabetic(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// countMatches 返回不重叠匹配次数。
func countMatches(pattern *regexp.Regexp, text string) int64 {
	return int64(len(pattern.FindAllStringIndex(text, -1)))
}
