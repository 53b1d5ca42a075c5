// Package aggregate 把单文件记录折叠为项目级统计。
// Aggregator 只允许一个写入者，调用方负责串行调用 Fold。
package aggregate

import (
	"maps"
	"path"

	"codestat/internal/model"
)

// 默认 TopN 容量。
const (
	DefaultLargest  = 10
	DefaultSmallest = 5
)

// Options 控制 TopN 集合容量。
type Options struct {
	Largest  int
	Smallest int
}

// Aggregator 维护扫描过程中的累计状态。
type Aggregator struct {
	totals      model.Totals
	directories map[string]model.DirectoryAggregate
	extensions  map[string]model.ExtensionAggregate
	largest     *boundedSet
	smallest    *boundedSet
	lineLengths model.LineLengths
	files       []model.FileRecord
}

// New 创建聚合器。容量为 0 时使用默认值，负数表示不跟踪。
func New(options Options) *Aggregator {
	if options.Largest == 0 {
		options.Largest = DefaultLargest
	}
	if options.Smallest == 0 {
		options.Smallest = DefaultSmallest
	}

	return &Aggregator{
		directories: make(map[string]model.DirectoryAggregate),
		extensions:  make(map[string]model.ExtensionAggregate),
		largest:     newLargestSet(options.Largest),
		smallest:    newSmallestSet(options.Smallest),
	}
}

// Fold 把一个文件记录叠加到全部累计值中。
func (a *Aggregator) Fold(record model.FileRecord) {
	seq := len(a.files)
	a.files = append(a.files, record)

	a.totals.AddFileRecord(record)

	dirKey := DirectoryKey(record.Path)
	directory := a.directories[dirKey]
	directory.Files++
	directory.Lines += record.Lines.Total
	directory.Characters += record.Characters
	a.directories[dirKey] = directory

	extension := a.extensions[record.Extension]
	extension.Files++
	extension.Lines += record.Lines.Total
	extension.CodeLines += record.Lines.Code
	extension.Characters += record.Characters
	a.extensions[record.Extension] = extension

	a.lineLengths.Merge(record.LineLengths)

	ranked := rankedRecord{record: record, seq: seq}
	a.largest.offer(ranked)
	a.smallest.offer(ranked)
}

// Snapshot 返回当前累计状态的深拷贝，后续 Fold 不会影响已返回的快照。
func (a *Aggregator) Snapshot() model.ProjectSnapshot {
	return model.ProjectSnapshot{
		Totals:      a.totals,
		Directories: maps.Clone(a.directories),
		Extensions:  maps.Clone(a.extensions),
		Largest:     a.largest.sorted(),
		Smallest:    a.smallest.sorted(),
		LineLengths: a.lineLengths,
	}
}

// Files 按折叠顺序返回全部文件记录的副本。
func (a *Aggregator) Files() []model.FileRecord {
	return append([]model.FileRecord(nil), a.files...)
}

// DirectoryKey 返回记录所在目录；根目录文件返回空字符串。
func DirectoryKey(relativePath string) string {
	dir := path.Dir(relativePath)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}
