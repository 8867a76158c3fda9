package features

import "regexp"

var (
	lineCommentPattern  = regexp.MustCompile(`//.*`)
	blockCommentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)
	doubleQuotedPattern = regexp.MustCompile(`"[^"]*"`)
	singleQuotedPattern = regexp.MustCompile(`'[^']*'`)
)

// Normalize 删除注释与字符串/字符字面量，得到供计数使用的 clean text。
//
// 先删注释再删字面量。字面量里的 // 或 /* 会被当作注释处理，
// 这是已知的近似行为，下游模型基于这种结果训练，不做修正。
func Normalize(source string) string {
	clean := lineCommentPattern.ReplaceAllLiteralString(source, "")
	clean = blockCommentPattern.ReplaceAllLiteralString(clean, "")
	clean = doubleQuotedPattern.ReplaceAllLiteralString(clean, "")
	return singleQuotedPattern.ReplaceAllLiteralString(clean, "")
}
