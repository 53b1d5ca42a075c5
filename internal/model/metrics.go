// Package model 定义 codestat 的核心数据模型。
// 这些结构会被扫描器、聚合器、输出层和命令层共同使用。
package model

// LineMetrics 表示一组行级统计值。
//
// 注意：
// - 每一行只归入 Code/Comment/Blank 其中之一
// - 因此恒有 Code + Comment + Blank == Total
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

// Consistent 判断三类行数之和是否等于总行数。
func (m LineMetrics) Consistent() bool {
	return m.Code+m.Comment+m.Blank == m.Total
}

// LineLengths 记录非空白行的最长、最短长度（按字符计）。
// Observed 为 false 时 Min 没有意义，输出层不应展示。
type LineLengths struct {
	Max      int  `json:"max"`
	Min      int  `json:"min,omitempty"`
	Observed bool `json:"observed"`
}

// Observe 记录一行非空白内容的长度。
func (l *LineLengths) Observe(length int) {
	if !l.Observed {
		l.Max = length
		l.Min = length
		l.Observed = true
		return
	}
	if length > l.Max {
		l.Max = length
	}
	if length < l.Min {
		l.Min = length
	}
}

// Merge 把另一组极值合并进来。
func (l *LineLengths) Merge(other LineLengths) {
	if !other.Observed {
		return
	}
	l.Observe(other.Max)
	l.Observe(other.Min)
}

// FileRecord 表示单文件扫描结果，创建后不再修改。
type FileRecord struct {
	Path        string      `json:"path"`
	Extension   string      `json:"extension"`
	Lines       LineMetrics `json:"lines"`
	Characters  int64       `json:"characters"`
	Bytes       int64       `json:"bytes"`
	Todos       int64       `json:"todos"`
	Fixmes      int64       `json:"fixmes"`
	IsTest      bool        `json:"is_test"`
	LineLengths LineLengths `json:"line_lengths"`
}

// DirectoryAggregate 表示某个目录（不含子目录）的累计值。
// 根目录使用空字符串作为 key。
type DirectoryAggregate struct {
	Files      int64 `json:"files"`
	Lines      int64 `json:"lines"`
	Characters int64 `json:"characters"`
}

// ExtensionAggregate 表示某个后缀的累计值。
type ExtensionAggregate struct {
	Files      int64 `json:"files"`
	Lines      int64 `json:"lines"`
	CodeLines  int64 `json:"code_lines"`
	Characters int64 `json:"characters"`
}

// Totals 表示项目级总计信息。
type Totals struct {
	Files int64 `json:"files"`
	LineMetrics
	Characters int64 `json:"characters"`
	Bytes      int64 `json:"bytes"`
	Todos      int64 `json:"todos"`
	Fixmes     int64 `json:"fixmes"`
	TestFiles  int64 `json:"test_files"`
}

// AddFileRecord 累加一个文件的统计值到项目总计中。
func (t *Totals) AddFileRecord(record FileRecord) {
	t.Files++
	t.LineMetrics.Add(record.Lines)
	t.Characters += record.Characters
	t.Bytes += record.Bytes
	t.Todos += record.Todos
	t.Fixmes += record.Fixmes
	if record.IsTest {
		t.TestFiles++
	}
}

// ProjectSnapshot 是聚合器在某一时刻的只读视图。
// Largest 按行数降序，Smallest 按行数升序。
type ProjectSnapshot struct {
	Totals      Totals                        `json:"totals"`
	Directories map[string]DirectoryAggregate `json:"directories"`
	Extensions  map[string]ExtensionAggregate `json:"extensions"`
	Largest     []FileRecord                  `json:"largest"`
	Smallest    []FileRecord                  `json:"smallest"`
	LineLengths LineLengths                   `json:"line_lengths"`
}

// ScanResult 是 scan 命令的完整输出模型。
// Files 保持扫描（遍历）顺序。
type ScanResult struct {
	Root     string          `json:"root"`
	Snapshot ProjectSnapshot `json:"snapshot"`
	Files    []FileRecord    `json:"files"`
}
