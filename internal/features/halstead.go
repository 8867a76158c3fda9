package features

import (
	"math"

	"cmetrics/internal/model"
)

const (
	// secondsPerDiscrimination 是 Stroud 数：每秒 18 次心理辨别。
	secondsPerDiscrimination = 18.0
	// volumePerBug 是每个缺陷对应的经验体积。
	volumePerBug = 3000.0
)

// countTokens 在 clean text 上统计运算符与操作数。
//
// 运算符按词汇表逐个计数，互不排斥（== 同时也会计入两次 =）。
// 操作数为非保留字的标识符加上数字字面量，二者合并为一个多重集。
func countTokens(clean string, lx *lexicon) model.TokenCounts {
	var counts model.TokenCounts

	for _, op := range lx.operators {
		matches := countMatches(op.pattern, clean)
		if matches > 0 {
			counts.UniqueOperators++
			counts.TotalOperators += matches
		}
	}

	unique := make(map[string]struct{})
	for _, word := range identifierPattern.FindAllString(clean, -1) {
		if lx.isKeyword(word) {
			continue
		}
		unique[word] = struct{}{}
		counts.TotalOperands++
	}
	for _, number := range numberPattern.FindAllString(clean, -1) {
		unique[number] = struct{}{}
		counts.TotalOperands++
	}
	counts.UniqueOperands = int64(len(unique))

	return counts
}

// deriveHalstead 由四个基础计数推导 Halstead 指标。
// 词汇量为 0 或任一唯一计数为 0 时，全部派生指标强制为 0。
func deriveHalstead(counts model.TokenCounts) model.HalsteadMetrics {
	eta1 := float64(counts.UniqueOperators)
	eta2 := float64(counts.UniqueOperands)
	n2 := float64(counts.TotalOperands)

	metrics := model.HalsteadMetrics{
		Length:     float64(counts.TotalOperators + counts.TotalOperands),
		Vocabulary: eta1 + eta2,
	}

	if metrics.Vocabulary == 0 || eta1 == 0 || eta2 == 0 {
		return metrics
	}

	if metrics.Vocabulary > 1 {
		metrics.Volume = metrics.Length * math.Log2(metrics.Vocabulary)
	}
	metrics.Difficulty = (eta1 / 2) * (n2 / eta2)
	if metrics.Difficulty > 0 {
		metrics.Level = 1 / metrics.Difficulty
		metrics.Intelligence = metrics.Volume / metrics.Difficulty
	}
	metrics.Effort = metrics.Difficulty * metrics.Volume
	metrics.Time = metrics.Effort / secondsPerDiscrimination
	metrics.Bugs = metrics.Volume / volumePerBug

	return metrics
}
