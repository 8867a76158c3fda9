package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeatureVectorRow(t *testing.T) {
	var vector FeatureVector
	vector[SlotLOC] = 10
	vector[SlotBranchCount] = 4

	row := vector.Row()
	assert.Len(t, row, 1)
	assert.Len(t, row[0], FeatureLength)
	assert.Equal(t, float32(10), row[0][0])
	assert.Equal(t, float32(4), row[0][FeatureLength-1])

	// Row 返回副本
	row[0][0] = 99
	assert.Equal(t, float32(10), vector[SlotLOC])
}

func TestFeatureNamesOrder(t *testing.T) {
	assert.Equal(t, "loc", FeatureNames[SlotLOC])
	assert.Equal(t, "v(g)", FeatureNames[SlotCyclomatic])
	assert.Equal(t, "t", FeatureNames[SlotTime])
	assert.Equal(t, "lOCodeAndComment", FeatureNames[SlotLOCodeAndComment])
	assert.Equal(t, "branchCount", FeatureNames[SlotBranchCount])
	assert.Equal(t, FeatureLength-1, SlotBranchCount)
}

func TestSummaryAddVector(t *testing.T) {
	var first, second FeatureVector
	first[SlotLOC], first[SlotLOCode], first[SlotCyclomatic] = 5, 5, 3
	second[SlotLOC], second[SlotLOComment], second[SlotLOBlank], second[SlotCyclomatic] = 4, 3, 1, 1

	var summary Summary
	summary.AddVector(first)
	summary.AddVector(second)

	assert.Equal(t, Summary{
		Files:         2,
		MaxCyclomatic: 3,
		LineMetrics:   LineMetrics{Total: 9, Code: 5, Comment: 3, Blank: 1},
	}, summary)
	assert.True(t, FeatureVector{}.IsZero())
}
