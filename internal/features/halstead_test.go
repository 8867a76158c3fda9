package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmetrics/internal/languages"
	"cmetrics/internal/model"
)

// builtinLexicon 编译内置 C/C++ 词汇表。
func builtinLexicon(t *testing.T) *lexicon {
	t.Helper()

	lx, err := compileLexicon(languages.Builtin())
	require.NoError(t, err)
	return lx
}

func TestCountTokens(t *testing.T) {
	lx := builtinLexicon(t)

	tests := []struct {
		name  string
		clean string
		want  model.TokenCounts
	}{
		{
			name:  "simple assignment",
			clean: "x = y + 1;",
			want:  model.TokenCounts{UniqueOperators: 3, UniqueOperands: 3, TotalOperators: 3, TotalOperands: 3},
		},
		{
			name:  "function with if",
			clean: "int main(){\n  if (x) return 1;\n}\n",
			want:  model.TokenCounts{UniqueOperators: 5, UniqueOperands: 3, TotalOperators: 7, TotalOperands: 3},
		},
		{
			name:  "sizeof is an operator and never an operand",
			clean: "n = sizeof(x);",
			want:  model.TokenCounts{UniqueOperators: 5, UniqueOperands: 2, TotalOperators: 5, TotalOperands: 2},
		},
		{
			name:  "overlapping symbols are counted per operator",
			clean: "a == b",
			want:  model.TokenCounts{UniqueOperators: 2, UniqueOperands: 2, TotalOperators: 3, TotalOperands: 2},
		},
		{
			name:  "word operators are case sensitive, keywords are not",
			clean: "New x",
			want:  model.TokenCounts{UniqueOperands: 1, TotalOperands: 1},
		},
		{
			name:  "keyword exclusion ignores case",
			clean: "IF Foo While Foo",
			want:  model.TokenCounts{UniqueOperands: 1, TotalOperands: 2},
		},
		{
			name:  "decimal literal is one operand",
			clean: "3.14",
			want:  model.TokenCounts{UniqueOperators: 1, UniqueOperands: 1, TotalOperators: 1, TotalOperands: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countTokens(tt.clean, lx))
		})
	}
}

func TestDeriveHalstead(t *testing.T) {
	got := deriveHalstead(model.TokenCounts{UniqueOperators: 3, UniqueOperands: 3, TotalOperators: 3, TotalOperands: 3})

	volume := 6 * math.Log2(6)
	assert.Equal(t, 6.0, got.Length)
	assert.Equal(t, 6.0, got.Vocabulary)
	assert.InDelta(t, volume, got.Volume, 1e-9)
	assert.InDelta(t, 1.5, got.Difficulty, 1e-9)
	assert.InDelta(t, 1/1.5, got.Level, 1e-9)
	assert.InDelta(t, 1.5*volume, got.Effort, 1e-9)
	assert.InDelta(t, 1.5*volume/18, got.Time, 1e-9)
	assert.InDelta(t, volume/3000, got.Bugs, 1e-9)
	assert.InDelta(t, volume/1.5, got.Intelligence, 1e-9)
}

func TestDeriveHalsteadZeroGuard(t *testing.T) {
	tests := []struct {
		name   string
		counts model.TokenCounts
	}{
		{name: "nothing", counts: model.TokenCounts{}},
		{name: "operators only", counts: model.TokenCounts{UniqueOperators: 2, TotalOperators: 5}},
		{name: "operands only", counts: model.TokenCounts{UniqueOperands: 4, TotalOperands: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deriveHalstead(tt.counts)

			assert.Equal(t, float64(tt.counts.TotalOperators+tt.counts.TotalOperands), got.Length)
			assert.Zero(t, got.Volume)
			assert.Zero(t, got.Difficulty)
			assert.Zero(t, got.Level)
			assert.Zero(t, got.Effort)
			assert.Zero(t, got.Time)
			assert.Zero(t, got.Bugs)
			assert.Zero(t, got.Intelligence)
		})
	}
}

func TestCountComplexity(t *testing.T) {
	lx := builtinLexicon(t)

	tests := []struct {
		name     string
		clean    string
		branches int64
	}{
		{name: "straight line code", clean: "int x = 1;", branches: 0},
		{name: "single if", clean: "if (x) return 1;", branches: 1},
		{
			name:     "every decision kind",
			clean:    "if (a && b || c) x = y ? 1 : 2; for(;;){} while(0); switch(k){case 1: break;} try{}catch(e){}",
			branches: 9,
		},
		{name: "keywords ignore case", clean: "IF (a) While (b)", branches: 2},
		{name: "whole words only", clean: "iffy = forward + casewise;", branches: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := countComplexity(tt.clean, lx)

			assert.Equal(t, tt.branches, got.BranchCount)
			assert.Equal(t, tt.branches+1, got.Cyclomatic)
			assert.Equal(t, got.Cyclomatic, got.Essential)
			assert.Equal(t, got.Cyclomatic, got.Design)
		})
	}
}
