package scanner

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter 决定哪些目录需要剪枝、哪些文件参与统计。
// 所有路径参数都是相对扫描根目录、以 "/" 分隔的路径。
type Filter struct {
	excludeNames    map[string]bool
	excludePatterns []string
	source          map[string]bool
	skip            map[string]bool
}

// NewFilter 创建过滤器。
// excludeDirs 中含 "/" 或 glob 元字符的条目视为 doublestar 模式。
func NewFilter(excludeDirs []string, sourceExtensions []string, skipExtensions []string) (*Filter, error) {
	filter := &Filter{
		excludeNames: make(map[string]bool),
		source:       extensionSet(sourceExtensions),
		skip:         extensionSet(skipExtensions),
	}

	for _, entry := range excludeDirs {
		entry = strings.Trim(strings.TrimSpace(entry), "/")
		if entry == "" {
			continue
		}
		if !isPattern(entry) {
			filter.excludeNames[entry] = true
			continue
		}
		if !doublestar.ValidatePattern(entry) {
			return nil, fmt.Errorf("invalid exclude pattern %q", entry)
		}
		filter.excludePatterns = append(filter.excludePatterns, entry)
	}

	return filter, nil
}

// SkipDir 判断目录是否需要整体剪枝。
func (f *Filter) SkipDir(relativeDir string) bool {
	if f.excludeNames[path.Base(relativeDir)] {
		return true
	}
	for _, pattern := range f.excludePatterns {
		if matched, _ := doublestar.Match(pattern, relativeDir); matched {
			return true
		}
	}
	return false
}

// Eligible 判断文件是否参与统计：
// 后缀在源码集合中、不在跳过集合中，且任何一级父目录都没有被排除。
func (f *Filter) Eligible(relativePath string) bool {
	ext := ExtensionOf(relativePath)
	if f.skip[ext] || !f.source[ext] {
		return false
	}

	for _, segment := range strings.Split(relativePath, "/") {
		if f.excludeNames[segment] {
			return false
		}
	}

	for dir := path.Dir(relativePath); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if f.SkipDir(dir) {
			return false
		}
	}
	return true
}

// ExtensionOf 返回小写后缀（含点号）。
// 与常见语义保持一致：".bashrc" 这类隐藏文件以及 "name." 没有后缀。
func ExtensionOf(filePath string) string {
	base := path.Base(filePath)
	index := strings.LastIndex(base, ".")
	if index <= 0 || index == len(base)-1 {
		return ""
	}
	return strings.ToLower(base[index:])
}

func isPattern(entry string) bool {
	return strings.ContainsAny(entry, "/*?[{")
}

func extensionSet(extensions []string) map[string]bool {
	result := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		result[ext] = true
	}
	return result
}
