package features

import "cmetrics/internal/model"

// countComplexity 统计决策点并推导 McCabe 家族指标。
// 基础路径为 1；决策关键字、&&/|| 与 ? 各自同时累加到复杂度和分支数。
func countComplexity(clean string, lx *lexicon) model.ComplexityMetrics {
	var branches int64
	for _, pattern := range lx.decisions {
		branches += countMatches(pattern, clean)
	}
	branches += countMatches(logicalPattern, clean)
	branches += countMatches(ternaryPattern, clean)

	cyclomatic := 1 + branches
	return model.ComplexityMetrics{
		Cyclomatic:  cyclomatic,
		Essential:   cyclomatic,
		Design:      cyclomatic,
		BranchCount: branches,
	}
}
