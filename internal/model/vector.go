package model

// FeatureLength 是特征向量的固定长度。
// 下游缺陷分类器按该长度与顺序训练，不能单独修改。
const FeatureLength = 21

// 特征槽位下标，顺序与 PROMISE 数据集（kc1/kc2）的列顺序一致。
const (
	SlotLOC = iota
	SlotCyclomatic
	SlotEssential
	SlotDesign
	SlotLength
	SlotVolume
	SlotLevel
	SlotDifficulty
	SlotIntelligence
	SlotEffort
	SlotBugs
	SlotTime
	SlotLOCode
	SlotLOComment
	SlotLOBlank
	SlotLOCodeAndComment
	SlotUniqueOperators
	SlotUniqueOperands
	SlotTotalOperators
	SlotTotalOperands
	SlotBranchCount
)

// FeatureNames 返回与槽位顺序一致的列名。
var FeatureNames = [FeatureLength]string{
	"loc",
	"v(g)",
	"ev(g)",
	"iv(g)",
	"n",
	"v",
	"l",
	"d",
	"i",
	"e",
	"b",
	"t",
	"lOCode",
	"lOComment",
	"lOBlank",
	"lOCodeAndComment",
	"uniq_Op",
	"uniq_Opnd",
	"total_Op",
	"total_Opnd",
	"branchCount",
}

// FeatureVector 是单个文件的 21 维特征。
// 零值即读取失败时使用的全零向量。
type FeatureVector [FeatureLength]float32

// Row 把向量包装成 1×21 的批量形状，便于直接交给按批预测的分类器。
func (v FeatureVector) Row() [][]float32 {
	row := make([]float32, FeatureLength)
	copy(row, v[:])
	return [][]float32{row}
}

// IsZero 判断向量是否全部为 0。
func (v FeatureVector) IsZero() bool {
	return v == FeatureVector{}
}
