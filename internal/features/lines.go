package features

import (
	"strings"

	"cmetrics/internal/model"
)

const (
	lineCommentMarker = "//"
	blockOpenMarker   = "/*"
	blockCloseMarker  = "*/"
)

// lineState 是行分类状态机的状态。
type lineState int

const (
	stateNormal lineState = iota
	stateInBlockComment
)

// lineKind 是单行的分类结果，每行只属于一类。
type lineKind int

const (
	kindCode lineKind = iota
	kindComment
	kindBlank
)

// lineClassifier 维护跨行的块注释状态。
type lineClassifier struct {
	state lineState
}

// classify 按固定顺序判定单行：块注释延续 → 行注释 → 块注释开始 → 空白 → 代码。
//
// 注意：
// - 块注释中出现 */ 的那一行仍然算注释，即使 */ 之后还有代码
// - 含 /* 的行整行算注释，不区分 /* 前面是否有代码
func (c *lineClassifier) classify(line string) lineKind {
	trimmed := strings.TrimSpace(line)

	switch {
	case c.state == stateInBlockComment:
		if strings.Contains(line, blockCloseMarker) {
			c.state = stateNormal
		}
		return kindComment
	case strings.HasPrefix(trimmed, lineCommentMarker):
		return kindComment
	case strings.Contains(line, blockOpenMarker):
		if !strings.Contains(line, blockCloseMarker) {
			c.state = stateInBlockComment
		}
		return kindComment
	case trimmed == "":
		return kindBlank
	default:
		return kindCode
	}
}

// ClassifyLines 逐行扫描源码并统计 total/code/comment/blank。
// 行以 \n 结束，末尾的 \n 不会产生额外的空行；空文本为 0 行。
// 未闭合的块注释会让剩余所有行都计为注释。
func ClassifyLines(source string) model.LineMetrics {
	var metrics model.LineMetrics
	classifier := &lineClassifier{}

	for rest := source; rest != ""; {
		var line string
		line, rest, _ = strings.Cut(rest, "\n")

		metrics.Total++
		switch classifier.classify(normalizeLine(line)) {
		case kindComment:
			metrics.Comment++
		case kindBlank:
			metrics.Blank++
		default:
			metrics.Code++
		}
	}

	return metrics
}

// normalizeLine 去除 Windows 换行遗留的 \r。
func normalizeLine(line string) string {
	return strings.TrimSuffix(line, "\r")
}
