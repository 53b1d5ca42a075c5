package scanner

import (
	"fmt"
	"regexp"
	"strings"
)

// testSuffixPattern 匹配 foo.test.ts / foo.spec.py 这类测试文件名。
var testSuffixPattern = regexp.MustCompile(`(?i)\.(test|spec)\.(ts|tsx|js|jsx|py)$`)

// testDirectories 是被视为测试目录的目录名（不区分大小写）。
var testDirectories = []string{"test", "tests", "__test__", "__tests__"}

// IsTestPath 根据相对路径判断是否为测试文件。
func IsTestPath(relativePath string) bool {
	segments := strings.Split(relativePath, "/")
	base := segments[len(segments)-1]

	if testSuffixPattern.MatchString(base) {
		return true
	}

	lowerBase := strings.ToLower(base)
	if strings.Contains(lowerBase, "test_") || strings.Contains(lowerBase, "_test.") {
		return true
	}

	for _, segment := range segments[:len(segments)-1] {
		for _, name := range testDirectories {
			if strings.EqualFold(segment, name) {
				return true
			}
		}
	}
	return false
}

// markerCounter 统计 TODO/FIXME 出现次数。
type markerCounter struct {
	todo  *regexp.Regexp
	fixme *regexp.Regexp
}

func newMarkerCounter(todoPattern string, fixmePattern string) (*markerCounter, error) {
	if todoPattern == "" {
		todoPattern = DefaultTodoPattern
	}
	if fixmePattern == "" {
		fixmePattern = DefaultFixmePattern
	}

	todo, err := regexp.Compile(todoPattern)
	if err != nil {
		return nil, fmt.Errorf("compile todo pattern: %w", err)
	}
	fixme, err := regexp.Compile(fixmePattern)
	if err != nil {
		return nil, fmt.Errorf("compile fixme pattern: %w", err)
	}
	return &markerCounter{todo: todo, fixme: fixme}, nil
}

func (m *markerCounter) count(content string) (todos int64, fixmes int64) {
	todos = int64(len(m.todo.FindAllStringIndex(content, -1)))
	fixmes = int64(len(m.fixme.FindAllStringIndex(content, -1)))
	return todos, fixmes
}
