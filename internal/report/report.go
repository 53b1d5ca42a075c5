// Package report 提供 codestat 的输出能力。
// 当前实现支持 table 控制台格式、JSON 格式和 markdown 报告，以及导出到文件。
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"codestat/internal/model"
)

// Format 表示输出格式。
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// maxDirectoryRows 是目录明细最多展示的行数。
const maxDirectoryRows = 50

// ParseFormat 解析用户输入的格式名称，不区分大小写。
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported format %q, allowed values: table, json, markdown", value)
	}
}

// Render 按指定格式输出扫描结果。generatedAt 只用于 markdown 报告头部。
func Render(writer io.Writer, format Format, result model.ScanResult, generatedAt time.Time) error {
	switch format {
	case FormatTable:
		return PrintTable(writer, result)
	case FormatJSON:
		return PrintJSON(writer, result)
	case FormatMarkdown:
		return PrintMarkdown(writer, result, generatedAt)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// PrintJSON 把扫描结果按易读 JSON 输出到任意 writer。
func PrintJSON(writer io.Writer, result model.ScanResult) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := writer.Write(append(content, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteFile 将已渲染的报告导出到指定路径。
// 如果目录不存在会自动创建。
func WriteFile(path string, content []byte) error {
	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}

	if writeErr := os.WriteFile(path, content, 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}

// DirectoryRow 是目录明细中的一行。
type DirectoryRow struct {
	Path string
	model.DirectoryAggregate
}

// ExtensionRow 是后缀明细中的一行。
type ExtensionRow struct {
	Extension string
	model.ExtensionAggregate
}

// SortedDirectories 按行数降序返回目录明细，行数相同时按路径排序。
func SortedDirectories(snapshot model.ProjectSnapshot) []DirectoryRow {
	rows := make([]DirectoryRow, 0, len(snapshot.Directories))
	for path, aggregate := range snapshot.Directories {
		rows = append(rows, DirectoryRow{Path: path, DirectoryAggregate: aggregate})
	}

	sort.Slice(rows, func(i int, j int) bool {
		if rows[i].Lines != rows[j].Lines {
			return rows[i].Lines > rows[j].Lines
		}
		return rows[i].Path < rows[j].Path
	})
	return rows
}

// SortedExtensions 按文件数降序返回后缀明细，文件数相同时按后缀排序。
func SortedExtensions(snapshot model.ProjectSnapshot) []ExtensionRow {
	rows := make([]ExtensionRow, 0, len(snapshot.Extensions))
	for ext, aggregate := range snapshot.Extensions {
		rows = append(rows, ExtensionRow{Extension: ext, ExtensionAggregate: aggregate})
	}

	sort.Slice(rows, func(i int, j int) bool {
		if rows[i].Files != rows[j].Files {
			return rows[i].Files > rows[j].Files
		}
		return rows[i].Extension < rows[j].Extension
	})
	return rows
}

// percent 计算百分比，分母为 0 时返回 0。
func percent(part int64, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// directoryCount 返回非根目录数量。
func directoryCount(snapshot model.ProjectSnapshot) int {
	count := 0
	for path := range snapshot.Directories {
		if path != "" {
			count++
		}
	}
	return count
}

func displayDirectory(path string) string {
	if path == "" {
		return "(root)"
	}
	return path
}

func displayExtension(ext string) string {
	if ext == "" {
		return "(none)"
	}
	return ext
}
