package languages

import (
	"sort"
	"strings"
)

// BlockDelimiter 表示一对块注释起止标记。
type BlockDelimiter struct {
	Start string
	End   string
}

// CommentSyntax 描述某种后缀的注释标记。
//
// 约定：
// - LinePrefix 为空表示该语言没有行注释
// - Blocks 按顺序尝试，先命中的起始标记生效
type CommentSyntax struct {
	LinePrefix string
	Blocks     []BlockDelimiter
}

// DefaultSyntax 是未知后缀使用的 C 风格注释语法。
var DefaultSyntax = CommentSyntax{
	LinePrefix: "//",
	Blocks:     []BlockDelimiter{{Start: "/*", End: "*/"}},
}

// Language 描述一种语言及其注释语法，用于注册和展示。
type Language struct {
	Name       string
	Extensions []string
	Syntax     CommentSyntax
}

var (
	cStyle = CommentSyntax{
		LinePrefix: "//",
		Blocks:     []BlockDelimiter{{Start: "/*", End: "*/"}},
	}
	hashOnly   = CommentSyntax{LinePrefix: "#"}
	markupOnly = CommentSyntax{Blocks: []BlockDelimiter{{Start: "<!--", End: "-->"}}}
)

// builtinLanguages 是内置注释语法表。
func builtinLanguages() []Language {
	return []Language{
		{Name: "JavaScript/TypeScript", Extensions: []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx"}, Syntax: cStyle},
		{
			Name:       "Python",
			Extensions: []string{".py"},
			Syntax: CommentSyntax{
				LinePrefix: "#",
				Blocks: []BlockDelimiter{
					{Start: `"""`, End: `"""`},
					{Start: "'''", End: "'''"},
				},
			},
		},
		{Name: "Shell", Extensions: []string{".sh", ".bash", ".zsh"}, Syntax: hashOnly},
		{Name: "CSS", Extensions: []string{".css"}, Syntax: CommentSyntax{Blocks: []BlockDelimiter{{Start: "/*", End: "*/"}}}},
		{Name: "SCSS/Less/Stylus", Extensions: []string{".scss", ".less", ".styl"}, Syntax: cStyle},
		{Name: "Sass", Extensions: []string{".sass"}, Syntax: CommentSyntax{LinePrefix: "//"}},
		{Name: "Go", Extensions: []string{".go"}, Syntax: cStyle},
		{Name: "Rust", Extensions: []string{".rs"}, Syntax: cStyle},
		{Name: "Java", Extensions: []string{".java"}, Syntax: cStyle},
		{Name: "C/C++", Extensions: []string{".c", ".cpp", ".h", ".hpp"}, Syntax: cStyle},
		{Name: "PHP", Extensions: []string{".php"}, Syntax: cStyle},
		{
			Name:       "Ruby",
			Extensions: []string{".rb"},
			Syntax: CommentSyntax{
				LinePrefix: "#",
				Blocks:     []BlockDelimiter{{Start: "=begin", End: "=end"}},
			},
		},
		{
			Name:       "SQL",
			Extensions: []string{".sql"},
			Syntax: CommentSyntax{
				LinePrefix: "--",
				Blocks:     []BlockDelimiter{{Start: "/*", End: "*/"}},
			},
		},
		{Name: "YAML/TOML", Extensions: []string{".yml", ".yaml", ".toml"}, Syntax: hashOnly},
		{Name: "Markup", Extensions: []string{".html", ".htm", ".xml", ".vue", ".svelte", ".astro", ".md"}, Syntax: markupOnly},
	}
}

// Registry 管理后缀到注释语法的映射。
// 构造完成后只读，可在多个 goroutine 间共享。
type Registry struct {
	languages []Language
	syntaxes  map[string]CommentSyntax
}

// NewRegistry 创建注册中心：先载入内置语言，再按顺序叠加 extra。
// 同一后缀以最后一次注册为准。
func NewRegistry(extra ...Language) *Registry {
	registry := &Registry{syntaxes: make(map[string]CommentSyntax)}

	for _, language := range append(builtinLanguages(), extra...) {
		language.Extensions = normalizeExtensions(language.Extensions)
		language.Syntax = cloneSyntax(language.Syntax)
		for _, ext := range language.Extensions {
			registry.syntaxes[ext] = language.Syntax
		}
		registry.languages = append(registry.languages, language)
	}

	return registry
}

// Lookup 返回后缀对应的注释语法，未知后缀返回 DefaultSyntax。
func (r *Registry) Lookup(ext string) CommentSyntax {
	if syntax, ok := r.syntaxes[strings.ToLower(ext)]; ok {
		return syntax
	}
	return DefaultSyntax
}

// Known 判断后缀是否显式注册过。
func (r *Registry) Known(ext string) bool {
	_, ok := r.syntaxes[strings.ToLower(ext)]
	return ok
}

// Languages 返回已注册语言清单，按名称排序。
// 被后续注册完全覆盖的后缀不会出现在原语言下。
func (r *Registry) Languages() []Language {
	result := make([]Language, 0, len(r.languages))
	seen := make(map[string]bool)

	for i := len(r.languages) - 1; i >= 0; i-- {
		language := r.languages[i]
		extensions := make([]string, 0, len(language.Extensions))
		for _, ext := range language.Extensions {
			if seen[ext] {
				continue
			}
			seen[ext] = true
			extensions = append(extensions, ext)
		}
		if len(extensions) == 0 {
			continue
		}
		sort.Strings(extensions)
		language.Extensions = extensions
		result = append(result, language)
	}

	sort.Slice(result, func(i int, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// normalizeExtensions 统一为小写并补齐前导点号。
func normalizeExtensions(extensions []string) []string {
	result := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		result = append(result, ext)
	}
	return result
}

func cloneSyntax(syntax CommentSyntax) CommentSyntax {
	syntax.Blocks = append([]BlockDelimiter(nil), syntax.Blocks...)
	return syntax
}
