// Package model 定义 cmetrics 的核心数据模型。
// 这些结构会被特征提取、扫描器、输出层和命令层共同使用。
package model

// LineMetrics 表示一组行级统计值。
//
// 注意：
// - 每一行只归入 Code/Comment/Blank 三类中的一类
// - 因此恒有 Code + Comment + Blank == Total
// - 同时含代码与注释的行不单独统计（lOCodeAndComment 固定为 0）
type LineMetrics struct {
	Total   int64 `json:"total"`
	Code    int64 `json:"code"`
	Comment int64 `json:"comment"`
	Blank   int64 `json:"blank"`
}

// Add 将另一个统计结果叠加到当前对象。
func (m *LineMetrics) Add(other LineMetrics) {
	m.Total += other.Total
	m.Code += other.Code
	m.Comment += other.Comment
	m.Blank += other.Blank
}

// ComplexityMetrics 表示 McCabe 家族的近似值。
// Essential 与 Design 无法通过词法扫描得到，直接取 Cyclomatic。
type ComplexityMetrics struct {
	Cyclomatic  int64 `json:"cyclomatic"`
	Essential   int64 `json:"essential"`
	Design      int64 `json:"design"`
	BranchCount int64 `json:"branch_count"`
}

// TokenCounts 是 Halstead 计算的四个基础计数。
type TokenCounts struct {
	UniqueOperators int64 `json:"unique_operators"`
	UniqueOperands  int64 `json:"unique_operands"`
	TotalOperators  int64 `json:"total_operators"`
	TotalOperands   int64 `json:"total_operands"`
}

// HalsteadMetrics 表示由 TokenCounts 推导出的 Halstead 指标。
type HalsteadMetrics struct {
	Length       float64 `json:"length"`
	Vocabulary   float64 `json:"vocabulary"`
	Volume       float64 `json:"volume"`
	Difficulty   float64 `json:"difficulty"`
	Level        float64 `json:"level"`
	Effort       float64 `json:"effort"`
	Time         float64 `json:"time"`
	Bugs         float64 `json:"bugs"`
	Intelligence float64 `json:"intelligence"`
}

// Features 汇总一个文件的全部中间指标以及最终特征向量。
type Features struct {
	Lines      LineMetrics       `json:"lines"`
	Complexity ComplexityMetrics `json:"complexity"`
	Tokens     TokenCounts       `json:"tokens"`
	Halstead   HalsteadMetrics   `json:"halstead"`
	Vector     FeatureVector     `json:"vector"`
}

// FileFeatures 表示单文件提取结果。
// Diagnostic 非空时 Vector 为全零向量（读取失败的降级结果）。
type FileFeatures struct {
	Path       string        `json:"path"`
	Language   string        `json:"language"`
	Vector     FeatureVector `json:"vector"`
	Diagnostic string        `json:"diagnostic,omitempty"`
}

// Degraded 判断该结果是否来自读取失败的降级路径。
func (f FileFeatures) Degraded() bool {
	return f.Diagnostic != ""
}

// ScanError 记录单文件扫描失败信息。
// 设计为“错误不阻断全量扫描”，便于大仓库分析时容错。
type ScanError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Summary 表示项目级汇总信息。
type Summary struct {
	Files         int64 `json:"files"`
	MaxCyclomatic int64 `json:"max_cyclomatic"`
	LineMetrics
}

// AddVector 把一个文件的特征向量累加到汇总中。
func (s *Summary) AddVector(vector FeatureVector) {
	s.Files++
	s.Total += int64(vector[SlotLOC])
	s.Code += int64(vector[SlotLOCode])
	s.Comment += int64(vector[SlotLOComment])
	s.Blank += int64(vector[SlotLOBlank])
	if cyclomatic := int64(vector[SlotCyclomatic]); cyclomatic > s.MaxCyclomatic {
		s.MaxCyclomatic = cyclomatic
	}
}

// ScanResult 是 scan 命令的完整输出模型。
// 包含文件级特征、全局汇总和错误列表。
type ScanResult struct {
	ScannedPath string         `json:"scanned_path"`
	Files       []FileFeatures `json:"files"`
	Summary     Summary        `json:"summary"`
	Errors      []ScanError    `json:"errors"`
}
