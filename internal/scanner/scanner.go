// Package scanner 提供目录扫描调度能力。
// 该层负责目录遍历、过滤、单文件度量和结果折叠，不负责注释语法细节。
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode/utf8"

	"codestat/internal/aggregate"
	"codestat/internal/languages"
	"codestat/internal/logging"
	"codestat/internal/model"

	"golang.org/x/sync/errgroup"
)

// ErrRootNotDirectory 表示扫描根路径不是目录。
var ErrRootNotDirectory = errors.New("scan root is not a directory")

// Options 是扫描服务的可配置项。
type Options struct {
	Workers          int
	ExcludeDirs      []string
	SourceExtensions []string
	SkipExtensions   []string
	TodoPattern      string
	FixmePattern     string
	Top              aggregate.Options
}

// DefaultOptions 返回与内置默认表一致的配置。
func DefaultOptions() Options {
	return Options{
		Workers:          runtime.NumCPU(),
		ExcludeDirs:      append([]string(nil), DefaultExcludeDirs...),
		SourceExtensions: append([]string(nil), DefaultSourceExtensions...),
		SkipExtensions:   append([]string(nil), DefaultSkipExtensions...),
		TodoPattern:      DefaultTodoPattern,
		FixmePattern:     DefaultFixmePattern,
	}
}

// Service 是扫描服务对象。
type Service struct {
	registry *languages.Registry
	filter   *Filter
	markers  *markerCounter
	workers  int
	top      aggregate.Options
}

// scanTask 表示一个待分析文件任务。
type scanTask struct {
	absolutePath string
	displayPath  string
}

// fileOutcome 是单文件分析结果：要么是记录，要么是跳过原因。
type fileOutcome struct {
	record     model.FileRecord
	skipReason error
}

// NewService 创建扫描服务。
func NewService(registry *languages.Registry, options Options) (*Service, error) {
	filter, err := NewFilter(options.ExcludeDirs, options.SourceExtensions, options.SkipExtensions)
	if err != nil {
		return nil, err
	}

	markers, err := newMarkerCounter(options.TodoPattern, options.FixmePattern)
	if err != nil {
		return nil, err
	}

	workers := options.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Service{
		registry: registry,
		filter:   filter,
		markers:  markers,
		workers:  workers,
		top:      options.Top,
	}, nil
}

// ScanPath 扫描目录并返回项目快照与全部文件记录。
// 根路径不存在或不是目录时直接返回错误；单文件失败只会被跳过。
func (s *Service) ScanPath(targetPath string) (model.ScanResult, error) {
	var result model.ScanResult

	trimmedPath := strings.TrimSpace(targetPath)
	if trimmedPath == "" {
		return result, errors.New("scan path is empty")
	}

	absoluteRoot, err := filepath.Abs(trimmedPath)
	if err != nil {
		return result, fmt.Errorf("resolve absolute path: %w", err)
	}

	info, err := os.Stat(absoluteRoot)
	if err != nil {
		return result, fmt.Errorf("stat scan root: %w", err)
	}
	if !info.IsDir() {
		return result, fmt.Errorf("%w: %s", ErrRootNotDirectory, absoluteRoot)
	}

	tasks, err := s.collectTasks(absoluteRoot)
	if err != nil {
		return result, err
	}

	outcomes := s.analyzeAll(tasks)

	aggregator := aggregate.New(s.top)
	skipped := 0
	for i, outcome := range outcomes {
		if outcome.skipReason != nil {
			skipped++
			logging.Logger.Debug("skip file", "path", tasks[i].displayPath, "error", outcome.skipReason)
			continue
		}
		aggregator.Fold(outcome.record)
	}

	result.Root = absoluteRoot
	result.Snapshot = aggregator.Snapshot()
	result.Files = aggregator.Files()

	logging.Logger.Debug("scan finished",
		"root", absoluteRoot,
		"candidates", len(tasks),
		"files", result.Snapshot.Totals.Files,
		"skipped", skipped)

	return result, nil
}

// collectTasks 按 WalkDir 的字典序遍历目录，返回待分析文件。
// 被排除的目录不会被进入；无法读取的子目录会被跳过。
func (s *Service) collectTasks(root string) ([]scanTask, error) {
	tasks := make([]scanTask, 0)

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			logging.Logger.Debug("skip unreadable path", "path", path, "error", walkErr)
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path == root {
			return nil
		}

		relativePath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		relativePath = filepath.ToSlash(relativePath)

		if entry.IsDir() {
			if s.filter.SkipDir(relativePath) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.filter.Eligible(relativePath) {
			return nil
		}

		tasks = append(tasks, scanTask{
			absolutePath: path,
			displayPath:  relativePath,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk scan root: %w", err)
	}

	return tasks, nil
}

// analyzeAll 并发分析全部任务，结果与 tasks 下标一一对应。
func (s *Service) analyzeAll(tasks []scanTask) []fileOutcome {
	outcomes := make([]fileOutcome, len(tasks))

	var group errgroup.Group
	group.SetLimit(s.workers)
	for i := range tasks {
		i := i
		group.Go(func() error {
			outcomes[i] = s.analyzeFile(tasks[i])
			return nil
		})
	}
	_ = group.Wait()

	return outcomes
}

// analyzeFile 读取单个文件并生成 FileRecord。
func (s *Service) analyzeFile(task scanTask) fileOutcome {
	info, err := os.Stat(task.absolutePath)
	if err != nil {
		return fileOutcome{skipReason: err}
	}
	if !info.Mode().IsRegular() {
		return fileOutcome{skipReason: fmt.Errorf("not a regular file: %s", info.Mode().Type())}
	}

	data, err := os.ReadFile(task.absolutePath)
	if err != nil {
		return fileOutcome{skipReason: err}
	}

	// 非法 UTF-8 字节直接丢弃，不中断扫描。
	content := strings.ToValidUTF8(string(data), "")
	lines := splitLines(content)
	extension := ExtensionOf(task.displayPath)

	record := model.FileRecord{
		Path:       task.displayPath,
		Extension:  extension,
		Lines:      languages.Classify(lines, s.registry.Lookup(extension)),
		Characters: int64(utf8.RuneCountInString(content)),
		Bytes:      info.Size(),
		IsTest:     IsTestPath(task.displayPath),
	}
	record.Todos, record.Fixmes = s.markers.count(content)

	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			record.LineLengths.Observe(utf8.RuneCountInString(line))
		}
	}

	return fileOutcome{record: record}
}

// splitLines 按 \n 切分内容并去掉行尾 \r。
// 末尾换行不会产生额外空行，因此行数 = 换行符数 + (末尾残行 ? 1 : 0)。
func splitLines(content string) []string {
	if content == "" {
		return nil
	}

	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
