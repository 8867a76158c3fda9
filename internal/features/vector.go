package features

import "cmetrics/internal/model"

// assembleVector 按 PROMISE 列顺序组装 21 维特征。
// lOCodeAndComment 不计算，固定为 0。
func assembleVector(lines model.LineMetrics, complexity model.ComplexityMetrics, tokens model.TokenCounts, halstead model.HalsteadMetrics) model.FeatureVector {
	var vector model.FeatureVector

	vector[model.SlotLOC] = float32(lines.Total)
	vector[model.SlotCyclomatic] = float32(complexity.Cyclomatic)
	vector[model.SlotEssential] = float32(complexity.Essential)
	vector[model.SlotDesign] = float32(complexity.Design)
	vector[model.SlotLength] = float32(halstead.Length)
	vector[model.SlotVolume] = float32(halstead.Volume)
	vector[model.SlotLevel] = float32(halstead.Level)
	vector[model.SlotDifficulty] = float32(halstead.Difficulty)
	vector[model.SlotIntelligence] = float32(halstead.Intelligence)
	vector[model.SlotEffort] = float32(halstead.Effort)
	vector[model.SlotBugs] = float32(halstead.Bugs)
	vector[model.SlotTime] = float32(halstead.Time)
	vector[model.SlotLOCode] = float32(lines.Code)
	vector[model.SlotLOComment] = float32(lines.Comment)
	vector[model.SlotLOBlank] = float32(lines.Blank)
	vector[model.SlotLOCodeAndComment] = 0
	vector[model.SlotUniqueOperators] = float32(tokens.UniqueOperators)
	vector[model.SlotUniqueOperands] = float32(tokens.UniqueOperands)
	vector[model.SlotTotalOperators] = float32(tokens.TotalOperators)
	vector[model.SlotTotalOperands] = float32(tokens.TotalOperands)
	vector[model.SlotBranchCount] = float32(complexity.BranchCount)

	return vector
}
