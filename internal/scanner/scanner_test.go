package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codestat/internal/aggregate"
	"codestat/internal/languages"
	"codestat/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFixtureFile 是测试辅助函数，用于在临时目录快速落地测试文件。
func writeFixtureFile(t testing.TB, path string, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "mkdir fixture dir")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "write fixture file")
}

// newTestService 使用默认配置创建扫描服务。
func newTestService(t testing.TB, workers int) *Service {
	t.Helper()

	options := DefaultOptions()
	options.Workers = workers
	service, err := NewService(languages.NewRegistry(), options)
	require.NoError(t, err)
	return service
}

func findRecord(t *testing.T, result model.ScanResult, path string) model.FileRecord {
	t.Helper()

	for _, record := range result.Files {
		if record.Path == path {
			return record
		}
	}
	require.Failf(t, "record not found", "path %s", path)
	return model.FileRecord{}
}

// TestScanDirectoryRecords 验证单文件记录的各项度量。
func TestScanDirectoryRecords(t *testing.T) {
	tempDir := t.TempDir()

	writeFixtureFile(t, filepath.Join(tempDir, "web", "app.js"), "// header\n\ncode();\n")
	writeFixtureFile(t, filepath.Join(tempDir, "main.go"), strings.Join([]string{
		"package main",
		"/* start",
		"still comment",
		"end */",
		"func main() {} // TODO: tidy",
	}, "\n"))
	writeFixtureFile(t, filepath.Join(tempDir, "README.txt"), "not a source file")

	result, err := newTestService(t, 4).ScanPath(tempDir)
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, []string{"main.go", "web/app.js"}, []string{result.Files[0].Path, result.Files[1].Path})

	app := findRecord(t, result, "web/app.js")
	assert.Equal(t, ".js", app.Extension)
	assert.Equal(t, model.LineMetrics{Total: 3, Code: 1, Comment: 1, Blank: 1}, app.Lines)
	assert.Equal(t, int64(len("// header\n\ncode();\n")), app.Bytes)
	assert.Equal(t, app.Bytes, app.Characters)
	assert.Equal(t, model.LineLengths{Max: 9, Min: 7, Observed: true}, app.LineLengths)

	main := findRecord(t, result, "main.go")
	assert.Equal(t, model.LineMetrics{Total: 5, Code: 2, Comment: 3}, main.Lines)
	assert.Equal(t, int64(1), main.Todos)
	assert.False(t, main.IsTest)

	snapshot := result.Snapshot
	assert.Equal(t, int64(2), snapshot.Totals.Files)
	assert.Equal(t, int64(8), snapshot.Totals.Total)
	assert.True(t, snapshot.Totals.Consistent())
	assert.Contains(t, snapshot.Directories, "")
	assert.Contains(t, snapshot.Directories, "web")
	assert.Equal(t, int64(1), snapshot.Extensions[".js"].Files)
	assert.Equal(t, tempDir, result.Root)
}

// TestScanLineCountWithoutTrailingNewline 验证末尾残行计入总行数。
func TestScanLineCountWithoutTrailingNewline(t *testing.T) {
	tempDir := t.TempDir()
	writeFixtureFile(t, filepath.Join(tempDir, "a.py"), "x = 1\r\ny = 2")
	writeFixtureFile(t, filepath.Join(tempDir, "b.py"), "")
	writeFixtureFile(t, filepath.Join(tempDir, "c.py"), "\n\n")

	result, err := newTestService(t, 2).ScanPath(tempDir)
	require.NoError(t, err)

	assert.Equal(t, model.LineMetrics{Total: 2, Code: 2}, findRecord(t, result, "a.py").Lines)
	assert.Equal(t, model.LineLengths{Max: 5, Min: 5, Observed: true}, findRecord(t, result, "a.py").LineLengths)
	assert.Equal(t, model.LineMetrics{}, findRecord(t, result, "b.py").Lines)
	assert.Equal(t, model.LineMetrics{Total: 2, Blank: 2}, findRecord(t, result, "c.py").Lines)
	assert.False(t, findRecord(t, result, "c.py").LineLengths.Observed)
}

// TestScanInvalidUTF8 验证非法字节被丢弃而不是中断扫描。
func TestScanInvalidUTF8(t *testing.T) {
	tempDir := t.TempDir()
	writeFixtureFile(t, filepath.Join(tempDir, "bad.go"), "var s = \"\xff\xfeok\"\n// 注释\n")

	result, err := newTestService(t, 1).ScanPath(tempDir)
	require.NoError(t, err)

	record := findRecord(t, result, "bad.go")
	assert.Equal(t, model.LineMetrics{Total: 2, Code: 1, Comment: 1}, record.Lines)
	assert.Equal(t, int64(len("var s = \"\xff\xfeok\"\n// 注释\n")), record.Bytes)
	assert.Equal(t, int64(len("var s = \"ok\"\n")+len("// 注释\n")-4), record.Characters)
}

// TestScanMarkers 验证 TODO/FIXME 不区分大小写计数，包含 To-Do 写法。
func TestScanMarkers(t *testing.T) {
	tempDir := t.TempDir()
	writeFixtureFile(t, filepath.Join(tempDir, "notes.md"), "TODO one\ntodo two\nTo-Do three\nToDo four\nfixme FIXME\n")

	result, err := newTestService(t, 1).ScanPath(tempDir)
	require.NoError(t, err)

	record := findRecord(t, result, "notes.md")
	assert.Equal(t, int64(4), record.Todos)
	assert.Equal(t, int64(2), record.Fixmes)
	assert.Equal(t, int64(4), result.Snapshot.Totals.Todos)
}

// TestScanPrunesExcludedDirectories 验证任意深度的排除目录都不会被进入。
func TestScanPrunesExcludedDirectories(t *testing.T) {
	tempDir := t.TempDir()
	writeFixtureFile(t, filepath.Join(tempDir, "a", "b", "c", "d", "node_modules", "dep.js"), "code();\n")
	writeFixtureFile(t, filepath.Join(tempDir, "a", "b", "c", "d", "e", "keep.js"), "code();\n")
	writeFixtureFile(t, filepath.Join(tempDir, "testsprite_tests", "tmp", "gen.js"), "code();\n")
	writeFixtureFile(t, filepath.Join(tempDir, "testsprite_tests", "case.js"), "code();\n")
	writeFixtureFile(t, filepath.Join(tempDir, ".git", "hook.sh"), "echo\n")

	result, err := newTestService(t, 2).ScanPath(tempDir)
	require.NoError(t, err)

	paths := make([]string, 0, len(result.Files))
	for _, record := range result.Files {
		paths = append(paths, record.Path)
	}
	assert.Equal(t, []string{"a/b/c/d/e/keep.js", "testsprite_tests/case.js"}, paths)
	assert.NotContains(t, result.Snapshot.Directories, "a/b/c/d/node_modules")
}

// TestScanExtensionFilters 验证跳过后缀优先于源码后缀。
func TestScanExtensionFilters(t *testing.T) {
	tempDir := t.TempDir()
	writeFixtureFile(t, filepath.Join(tempDir, "logo.svg"), "<svg></svg>\n")
	writeFixtureFile(t, filepath.Join(tempDir, "image.png"), "binary")
	writeFixtureFile(t, filepath.Join(tempDir, "UPPER.GO"), "package upper\n")
	writeFixtureFile(t, filepath.Join(tempDir, ".json"), "{}\n")

	result, err := newTestService(t, 1).ScanPath(tempDir)
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, ".go", result.Files[0].Extension)
}

// TestScanTestFileCount 验证测试文件计数。
func TestScanTestFileCount(t *testing.T) {
	tempDir := t.TempDir()
	writeFixtureFile(t, filepath.Join(tempDir, "src", "utils", "math_test.go"), "package utils\n")
	writeFixtureFile(t, filepath.Join(tempDir, "src", "app.go"), "package src\n")
	writeFixtureFile(t, filepath.Join(tempDir, "web", "__tests__", "app.js"), "it();\n")

	result, err := newTestService(t, 2).ScanPath(tempDir)
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.Snapshot.Totals.TestFiles)
	assert.True(t, findRecord(t, result, "src/utils/math_test.go").IsTest)
	assert.False(t, findRecord(t, result, "src/app.go").IsTest)
}

// TestScanIdempotent 验证同一目录扫描两次得到相同结果，且与 worker 数无关。
func TestScanIdempotent(t *testing.T) {
	tempDir := t.TempDir()
	for _, name := range []string{"a.go", "b.go", "c.go", "d/e.go", "d/f.py", "g/h/i.rb"} {
		writeFixtureFile(t, filepath.Join(tempDir, name), strings.Repeat("x := 1\n", len(name)))
	}

	first, err := newTestService(t, 1).ScanPath(tempDir)
	require.NoError(t, err)
	second, err := newTestService(t, 8).ScanPath(tempDir)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// TestScanTopNCapacities 验证 TopN 容量配置生效。
func TestScanTopNCapacities(t *testing.T) {
	tempDir := t.TempDir()
	for i := 1; i <= 6; i++ {
		writeFixtureFile(t, filepath.Join(tempDir, strings.Repeat("f", i)+".go"), strings.Repeat("x\n", i))
	}

	options := DefaultOptions()
	options.Top = aggregate.Options{Largest: 2, Smallest: 3}
	service, err := NewService(languages.NewRegistry(), options)
	require.NoError(t, err)

	result, err := service.ScanPath(tempDir)
	require.NoError(t, err)

	require.Len(t, result.Snapshot.Largest, 2)
	require.Len(t, result.Snapshot.Smallest, 3)
	assert.Equal(t, int64(6), result.Snapshot.Largest[0].Lines.Total)
	assert.Equal(t, int64(1), result.Snapshot.Smallest[0].Lines.Total)
}

// TestScanSkipsUnreadableFile 验证无法读取的文件被静默跳过。
func TestScanSkipsUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read files regardless of permissions")
	}

	tempDir := t.TempDir()
	writeFixtureFile(t, filepath.Join(tempDir, "ok.go"), "package ok\n")
	locked := filepath.Join(tempDir, "locked.go")
	writeFixtureFile(t, locked, "package locked\n")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o644) })

	result, err := newTestService(t, 2).ScanPath(tempDir)
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, "ok.go", result.Files[0].Path)
}

// TestScanRootMustBeDirectory 验证根路径是文件时返回致命错误。
func TestScanRootMustBeDirectory(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "demo.go")
	writeFixtureFile(t, filePath, "package demo\n")

	_, err := newTestService(t, 1).ScanPath(filePath)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRootNotDirectory)
}

// TestScanMissingRoot 验证根路径不存在时返回错误。
func TestScanMissingRoot(t *testing.T) {
	_, err := newTestService(t, 1).ScanPath(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = newTestService(t, 1).ScanPath("   ")
	assert.EqualError(t, err, "scan path is empty")
}

// TestNewServiceRejectsBadPatterns 验证非法的正则与 glob 在创建服务时报错。
func TestNewServiceRejectsBadPatterns(t *testing.T) {
	options := DefaultOptions()
	options.TodoPattern = "("
	_, err := NewService(languages.NewRegistry(), options)
	assert.ErrorContains(t, err, "compile todo pattern")

	options = DefaultOptions()
	options.ExcludeDirs = []string{"gen/[a-"}
	_, err = NewService(languages.NewRegistry(), options)
	assert.ErrorContains(t, err, "invalid exclude pattern")
}
