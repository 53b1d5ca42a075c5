package report

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"codestat/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// PrintTable 使用表格展示扫描结果。
// 标题样式按 writer 自身探测终端能力，写入文件或缓冲区时输出纯文本。
func PrintTable(writer io.Writer, result model.ScanResult) error {
	headingStyle := lipgloss.NewRenderer(writer).NewStyle().Bold(true)
	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)
	snapshot := result.Snapshot
	totals := snapshot.Totals

	if _, err := fmt.Fprintf(tw, "SCANNED PATH\t%s\n", result.Root); err != nil {
		return err
	}

	if err := writeHeading(tw, headingStyle, "Files"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(tw, "FILE\tEXT\tTOTAL\tCODE\tCOMMENT\tBLANK\tSIZE"); err != nil {
		return err
	}
	for _, item := range result.Files {
		if _, err := fmt.Fprintf(
			tw,
			"%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			item.Path,
			displayExtension(item.Extension),
			item.Lines.Total,
			item.Lines.Code,
			item.Lines.Comment,
			item.Lines.Blank,
			humanize.IBytes(uint64(item.Bytes)),
		); err != nil {
			return err
		}
	}

	if err := writeHeading(tw, headingStyle, "Extensions"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(tw, "EXT\tFILES\tLINES\tCODE\tCHARACTERS"); err != nil {
		return err
	}
	for _, item := range SortedExtensions(snapshot) {
		if _, err := fmt.Fprintf(
			tw,
			"%s\t%d\t%d\t%d\t%d\n",
			displayExtension(item.Extension),
			item.Files,
			item.Lines,
			item.CodeLines,
			item.Characters,
		); err != nil {
			return err
		}
	}

	if err := writeHeading(tw, headingStyle, "Directories"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(tw, "DIRECTORY\tFILES\tLINES\tCHARACTERS\tSHARE"); err != nil {
		return err
	}
	directories := SortedDirectories(snapshot)
	if len(directories) > maxDirectoryRows {
		directories = directories[:maxDirectoryRows]
	}
	for _, item := range directories {
		if _, err := fmt.Fprintf(
			tw,
			"%s\t%d\t%d\t%d\t%.1f%%\n",
			displayDirectory(item.Path),
			item.Files,
			item.Lines,
			item.Characters,
			percent(item.Lines, totals.Total),
		); err != nil {
			return err
		}
	}

	if err := writeRanking(tw, headingStyle, "Largest files", snapshot.Largest); err != nil {
		return err
	}
	if err := writeRanking(tw, headingStyle, "Smallest files", snapshot.Smallest); err != nil {
		return err
	}

	if err := writeHeading(tw, headingStyle, "Summary"); err != nil {
		return err
	}
	summary := [][2]string{
		{"FILES", humanize.Comma(totals.Files)},
		{"DIRECTORIES", strconv.Itoa(directoryCount(snapshot))},
		{"LINES", humanize.Comma(totals.Total)},
		{"CODE", fmt.Sprintf("%s (%.1f%%)", humanize.Comma(totals.Code), percent(totals.Code, totals.Total))},
		{"COMMENT", fmt.Sprintf("%s (%.1f%%)", humanize.Comma(totals.Comment), percent(totals.Comment, totals.Total))},
		{"BLANK", fmt.Sprintf("%s (%.1f%%)", humanize.Comma(totals.Blank), percent(totals.Blank, totals.Total))},
		{"CHARACTERS", humanize.Comma(totals.Characters)},
		{"SIZE", humanize.IBytes(uint64(totals.Bytes))},
		{"TODO", humanize.Comma(totals.Todos)},
		{"FIXME", humanize.Comma(totals.Fixmes)},
		{"TEST FILES", humanize.Comma(totals.TestFiles)},
	}
	if snapshot.LineLengths.Observed {
		summary = append(summary,
			[2]string{"LONGEST LINE", strconv.Itoa(snapshot.LineLengths.Max)},
			[2]string{"SHORTEST LINE", strconv.Itoa(snapshot.LineLengths.Min)},
		)
	}
	for _, row := range summary {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1]); err != nil {
			return err
		}
	}

	return tw.Flush()
}

// writeHeading 输出小节标题，标题前空一行。
func writeHeading(writer io.Writer, style lipgloss.Style, title string) error {
	_, err := fmt.Fprintf(writer, "\n%s\n", style.Render(title))
	return err
}

func writeRanking(writer io.Writer, style lipgloss.Style, title string, records []model.FileRecord) error {
	if err := writeHeading(writer, style, title); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(writer, "FILE\tLINES\tCHARACTERS\tSIZE"); err != nil {
		return err
	}
	for _, item := range records {
		if _, err := fmt.Fprintf(
			writer,
			"%s\t%d\t%d\t%s\n",
			item.Path,
			item.Lines.Total,
			item.Characters,
			humanize.IBytes(uint64(item.Bytes)),
		); err != nil {
			return err
		}
	}
	return nil
}
