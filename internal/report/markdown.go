package report

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"codestat/internal/model"

	"github.com/dustin/go-humanize"
)

// barWidth 是 markdown 进度条的字符宽度（每格 2%）。
const barWidth = 50

// PrintMarkdown 生成 markdown 格式的项目统计报告。
func PrintMarkdown(writer io.Writer, result model.ScanResult, generatedAt time.Time) error {
	var b strings.Builder
	snapshot := result.Snapshot
	totals := snapshot.Totals
	date := generatedAt.Format("2006-01-02 15:04:05")

	b.WriteString("# Project Code Statistics\n\n")
	fmt.Fprintf(&b, "**Generated on:** %s  \n", date)
	fmt.Fprintf(&b, "**Project:** `%s`\n\n", filepath.Base(result.Root))

	b.WriteString("## Overview\n\n")
	b.WriteString("| Metric | Value |\n|--------|-------|\n")
	overview := [][2]string{
		{"Total Files", humanize.Comma(totals.Files)},
		{"Total Directories", humanize.Comma(int64(directoryCount(snapshot)))},
		{"Total Lines", humanize.Comma(totals.Total)},
		{"Code Lines", humanize.Comma(totals.Code)},
		{"Comment Lines", humanize.Comma(totals.Comment)},
		{"Blank Lines", humanize.Comma(totals.Blank)},
		{"Total Characters", humanize.Comma(totals.Characters)},
		{"Total Size", humanize.IBytes(uint64(totals.Bytes))},
		{"TODO Count", humanize.Comma(totals.Todos)},
		{"FIXME Count", humanize.Comma(totals.Fixmes)},
		{"Test Files", humanize.Comma(totals.TestFiles)},
	}
	if snapshot.LineLengths.Observed {
		overview = append(overview,
			[2]string{"Longest Line", humanize.Comma(int64(snapshot.LineLengths.Max))},
			[2]string{"Shortest Line", humanize.Comma(int64(snapshot.LineLengths.Min))},
		)
	}
	for _, row := range overview {
		fmt.Fprintf(&b, "| **%s** | `%s` |\n", row[0], row[1])
	}

	b.WriteString("\n## Directory Breakdown\n\n")
	b.WriteString("| Directory | Files | Lines | Characters | % of Project |\n")
	b.WriteString("|-----------|-------|-------|------------|--------------|\n")
	directories := SortedDirectories(snapshot)
	if len(directories) > maxDirectoryRows {
		directories = directories[:maxDirectoryRows]
	}
	for _, row := range directories {
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s | %.1f%% |\n",
			displayDirectory(row.Path),
			humanize.Comma(row.Files),
			humanize.Comma(row.Lines),
			humanize.Comma(row.Characters),
			percent(row.Lines, totals.Total))
	}

	b.WriteString("\n## File Type Analysis\n\n")
	b.WriteString("| Extension | Files | Lines | Code Lines | Characters | % of Files | % of Lines | Share |\n")
	b.WriteString("|-----------|-------|-------|------------|------------|------------|------------|-------|\n")
	extensions := SortedExtensions(snapshot)
	for _, row := range extensions {
		filesPct := percent(row.Files, totals.Files)
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s | %s | %.1f%% | %.1f%% | %s |\n",
			displayExtension(row.Extension),
			humanize.Comma(row.Files),
			humanize.Comma(row.Lines),
			humanize.Comma(row.CodeLines),
			humanize.Comma(row.Characters),
			filesPct,
			percent(row.Lines, totals.Total),
			bar(filesPct))
	}

	b.WriteString("\n## Largest Files\n\n")
	b.WriteString("| File | Lines | Characters | Size |\n|------|-------|------------|------|\n")
	for _, record := range snapshot.Largest {
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n",
			record.Path,
			humanize.Comma(record.Lines.Total),
			humanize.Comma(record.Characters),
			humanize.IBytes(uint64(record.Bytes)))
	}

	b.WriteString("\n## Smallest Files\n\n")
	b.WriteString("| File | Lines | Characters |\n|------|-------|------------|\n")
	for _, record := range snapshot.Smallest {
		fmt.Fprintf(&b, "| `%s` | %s | %s |\n",
			record.Path,
			humanize.Comma(record.Lines.Total),
			humanize.Comma(record.Characters))
	}

	codePct := percent(totals.Code, totals.Total)
	commentPct := percent(totals.Comment, totals.Total)
	blankPct := percent(totals.Blank, totals.Total)

	b.WriteString("\n## Line Distribution\n\n")
	b.WriteString("| Type | Lines | Percentage | Visual |\n|------|-------|------------|--------|\n")
	fmt.Fprintf(&b, "| **Code** | %s | %.1f%% | `%s` |\n", humanize.Comma(totals.Code), codePct, bar(codePct))
	fmt.Fprintf(&b, "| **Comments** | %s | %.1f%% | `%s` |\n", humanize.Comma(totals.Comment), commentPct, bar(commentPct))
	fmt.Fprintf(&b, "| **Blank** | %s | %.1f%% | `%s` |\n", humanize.Comma(totals.Blank), blankPct, bar(blankPct))
	fmt.Fprintf(&b, "| **Total** | %s | 100%% | |\n", humanize.Comma(totals.Total))

	sourceFiles := totals.Files - totals.TestFiles
	ratio := float64(sourceFiles)
	if totals.TestFiles > 0 {
		ratio = float64(sourceFiles) / float64(totals.TestFiles)
	}

	b.WriteString("\n## Code Quality Indicators\n\n")
	b.WriteString("| Indicator | Count |\n|-----------|-------|\n")
	fmt.Fprintf(&b, "| **TODOs** | %d |\n", totals.Todos)
	fmt.Fprintf(&b, "| **FIXMEs** | %d |\n", totals.Fixmes)
	fmt.Fprintf(&b, "| **Test Files** | %d |\n", totals.TestFiles)
	fmt.Fprintf(&b, "| **Source vs Test Ratio** | %.2f:1 |\n", ratio)
	fmt.Fprintf(&b, "| **Code Density** | %.1f%% |\n", codePct)

	mostCommon := "none (0 files)"
	if len(extensions) > 0 {
		mostCommon = fmt.Sprintf("%s (%d files)", displayExtension(extensions[0].Extension), extensions[0].Files)
	}

	b.WriteString("\n## Project Summary\n\n")
	b.WriteString("| Statistic | Value |\n|-----------|-------|\n")
	fmt.Fprintf(&b, "| **Project Size** | %s |\n", humanize.IBytes(uint64(totals.Bytes)))
	fmt.Fprintf(&b, "| **Avg Lines/File** | %.1f |\n", average(totals.Total, totals.Files))
	fmt.Fprintf(&b, "| **Avg Characters/File** | %.1f |\n", average(totals.Characters, totals.Files))
	fmt.Fprintf(&b, "| **Avg File Size** | %.1f KB |\n", average(totals.Bytes, totals.Files)/1024)
	fmt.Fprintf(&b, "| **Most Common Type** | `%s` |\n", mostCommon)
	fmt.Fprintf(&b, "| **Extensions Used** | %d |\n", len(extensions))
	fmt.Fprintf(&b, "| **Test Coverage** | %.1f%% |\n", percent(totals.TestFiles, totals.Files))
	fmt.Fprintf(&b, "| **Scan Date** | %s |\n", date)

	files := append([]model.FileRecord(nil), result.Files...)
	sort.SliceStable(files, func(i int, j int) bool {
		return files[i].Lines.Total > files[j].Lines.Total
	})

	b.WriteString("\n## File Statistics (All Files)\n\n")
	fmt.Fprintf(&b, "<details>\n<summary><b>Full table (%d files)</b></summary>\n\n", len(files))
	b.WriteString("| File Path | Ext | Lines | Code | Comment | Blank | Chars | Size (KB) |\n")
	b.WriteString("|-----------|-----|-------|------|---------|-------|-------|-----------|\n")
	for _, record := range files {
		fmt.Fprintf(&b, "| `%s` | `%s` | %s | %s | %s | %s | %s | %.1f |\n",
			record.Path,
			displayExtension(record.Extension),
			humanize.Comma(record.Lines.Total),
			humanize.Comma(record.Lines.Code),
			humanize.Comma(record.Lines.Comment),
			humanize.Comma(record.Lines.Blank),
			humanize.Comma(record.Characters),
			float64(record.Bytes)/1024)
	}
	b.WriteString("\n</details>\n")

	if _, err := io.WriteString(writer, b.String()); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// bar 把百分比渲染为固定宽度的文本进度条。
func bar(pct float64) string {
	filled := int(pct / 2)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

func average(sum int64, count int64) float64 {
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}
