package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmetrics/internal/features"
	"cmetrics/internal/languages"
	"cmetrics/internal/logging"
	"cmetrics/internal/model"
)

// writeFixtureFile 是测试辅助函数，用于在临时目录快速落地测试文件。
func writeFixtureFile(t *testing.T, path string, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newTestService 创建丢弃日志的扫描服务。
func newTestService(t *testing.T, registry *languages.Registry, workers int) *Service {
	t.Helper()

	service, err := NewService(registry, workers, features.Options{
		Logger:    logging.Discard(),
		CacheSize: 16,
	})
	require.NoError(t, err)
	return service
}

// TestScanSingleFile 验证 scan 支持“直接传单文件路径”。
func TestScanSingleFile(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "single.cpp")

	writeFixtureFile(t, filePath, strings.Join([]string{
		"// top comment",
		"int main() {",
		"    if (a && b) return 1;",
		"",
		"    return 0;",
		"}",
	}, "\n"))

	result, err := newTestService(t, languages.NewRegistry(), 2).ScanPath(filePath)
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Empty(t, result.Errors)

	fileFeatures := result.Files[0]
	assert.Equal(t, "single.cpp", fileFeatures.Path)
	assert.Equal(t, "C/C++", fileFeatures.Language)
	assert.Equal(t, float32(6), fileFeatures.Vector[model.SlotLOC])
	assert.Equal(t, float32(4), fileFeatures.Vector[model.SlotLOCode])
	assert.Equal(t, float32(1), fileFeatures.Vector[model.SlotLOComment])
	assert.Equal(t, float32(1), fileFeatures.Vector[model.SlotLOBlank])
	assert.Equal(t, float32(3), fileFeatures.Vector[model.SlotCyclomatic])

	assert.Equal(t, model.Summary{
		Files:         1,
		MaxCyclomatic: 3,
		LineMetrics:   model.LineMetrics{Total: 6, Code: 4, Comment: 1, Blank: 1},
	}, result.Summary)
}

// TestScanDirectory 验证目录扫描只处理已注册后缀，并按路径排序。
func TestScanDirectory(t *testing.T) {
	tempDir := t.TempDir()

	writeFixtureFile(t, filepath.Join(tempDir, "src", "main.cpp"), "int main() { return 0; }\n")
	writeFixtureFile(t, filepath.Join(tempDir, "include", "util.h"), "int util(int x);\n")
	writeFixtureFile(t, filepath.Join(tempDir, "src", "dup.cc"), "int main() { return 0; }\n")
	writeFixtureFile(t, filepath.Join(tempDir, "README.txt"), "not a source file")

	result, err := newTestService(t, languages.NewRegistry(), 4).ScanPath(tempDir)
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.Equal(t, "include/util.h", result.Files[0].Path)
	assert.Equal(t, "src/dup.cc", result.Files[1].Path)
	assert.Equal(t, "src/main.cpp", result.Files[2].Path)
	assert.Equal(t, result.Files[1].Vector, result.Files[2].Vector)
	assert.Equal(t, int64(3), result.Summary.Files)
}

// TestScanExtraDialect 验证额外方言按后缀参与扫描。
func TestScanExtraDialect(t *testing.T) {
	tempDir := t.TempDir()
	writeFixtureFile(t, filepath.Join(tempDir, "Main.java"), "class Main { void run() { if (x) y = 1; } }\n")

	java := &languages.Dialect{
		Name:             "Java",
		Extensions:       []string{".java"},
		Operators:        []string{"=", ";", "(", ")", "{", "}"},
		Keywords:         []string{"class", "void", "if"},
		DecisionKeywords: []string{"if"},
	}
	require.NoError(t, java.Validate())

	result, err := newTestService(t, languages.NewRegistry(java), 1).ScanPath(tempDir)
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, "Java", result.Files[0].Language)
	assert.Equal(t, float32(2), result.Files[0].Vector[model.SlotCyclomatic])
}

// TestScanUnreadableFileDegrades 验证读取失败只降级为零向量并记录错误，不中断扫描。
func TestScanUnreadableFileDegrades(t *testing.T) {
	tempDir := t.TempDir()
	writeFixtureFile(t, filepath.Join(tempDir, "ok.cpp"), "int x = 1;\n")
	writeFixtureFile(t, filepath.Join(tempDir, "bad.cpp"), string([]byte{0xff, 0xfe, 0xfd}))

	result, err := newTestService(t, languages.NewRegistry(), 2).ScanPath(tempDir)
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, "bad.cpp", result.Files[0].Path)
	assert.True(t, result.Files[0].Degraded())
	assert.True(t, result.Files[0].Vector.IsZero())

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "bad.cpp", result.Errors[0].Path)
	assert.Equal(t, int64(1), result.Summary.Files)
}

// TestScanUnsupportedSingleFile 验证单文件模式下不支持后缀会返回错误。
func TestScanUnsupportedSingleFile(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "demo.txt")
	writeFixtureFile(t, filePath, "plain text")

	_, err := newTestService(t, languages.NewRegistry(), 1).ScanPath(filePath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")
}

// TestScanMissingPath 验证路径不存在时返回错误。
func TestScanMissingPath(t *testing.T) {
	service := newTestService(t, languages.NewRegistry(), 1)

	_, err := service.ScanPath(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	_, err = service.ScanPath("   ")
	assert.Error(t, err)
}

func TestExtractorForLanguageFollowsOverride(t *testing.T) {
	override, err := languages.ParseDialect([]byte("name = 'C/C++'\nextensions = ['.cpp']\noperators = ['+']"), "toml")
	require.NoError(t, err)

	service := newTestService(t, languages.NewRegistry(override), 1)

	extractor, ok := service.ExtractorForLanguage("C/C++")
	require.True(t, ok)
	assert.Same(t, override, extractor.Dialect())

	// 未声明 decision_keywords 的方言仍按内置判定关键字计数
	vector := extractor.Extract("if (a) b = c + d;\n").Vector
	assert.Equal(t, float32(2), vector[model.SlotCyclomatic])
	assert.Equal(t, float32(1), vector[model.SlotUniqueOperators])

	_, ok = service.ExtractorForLanguage("Cobol")
	assert.False(t, ok)
}
