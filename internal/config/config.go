// Package config 负责加载 codestat 的 YAML 配置。
// 使用严格解码（拒绝未知字段），未填写的字段在解码后补齐默认值。
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"runtime"

	"codestat/internal/aggregate"
	"codestat/internal/languages"
	"codestat/internal/scanner"

	"gopkg.in/yaml.v3"
)

// Config 是完整配置。
type Config struct {
	ExcludeDirs      []string         `yaml:"exclude_dirs"`
	SourceExtensions []string         `yaml:"source_extensions"`
	SkipExtensions   []string         `yaml:"skip_extensions"`
	Workers          int              `yaml:"workers"`
	Top              TopConfig        `yaml:"top"`
	Markers          MarkersConfig    `yaml:"markers"`
	Languages        []LanguageConfig `yaml:"languages,omitempty"`
}

// TopConfig 控制最大/最小文件列表的容量。
type TopConfig struct {
	Largest  int `yaml:"largest"`
	Smallest int `yaml:"smallest"`
}

// MarkersConfig 是 TODO/FIXME 的匹配正则。
type MarkersConfig struct {
	Todo  string `yaml:"todo"`
	Fixme string `yaml:"fixme"`
}

// LanguageConfig 定义一个自定义语言，会覆盖内置表中相同后缀的语法。
type LanguageConfig struct {
	Name          string        `yaml:"name"`
	Extensions    []string      `yaml:"extensions"`
	LineComment   string        `yaml:"line_comment"`
	BlockComments []BlockConfig `yaml:"block_comments,omitempty"`
}

// BlockConfig 是一对块注释标记。
type BlockConfig struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// Default 返回全部使用默认值的配置。
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// Load 读取 YAML 配置文件。path 为空时返回默认配置。
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	// 空文件会返回 io.EOF，视为全部使用默认值。
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults 为未设置的字段补齐默认值。
func (c *Config) setDefaults() {
	if c.ExcludeDirs == nil {
		c.ExcludeDirs = append([]string(nil), scanner.DefaultExcludeDirs...)
	}
	if c.SourceExtensions == nil {
		c.SourceExtensions = append([]string(nil), scanner.DefaultSourceExtensions...)
	}
	if c.SkipExtensions == nil {
		c.SkipExtensions = append([]string(nil), scanner.DefaultSkipExtensions...)
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Top.Largest == 0 {
		c.Top.Largest = aggregate.DefaultLargest
	}
	if c.Top.Smallest == 0 {
		c.Top.Smallest = aggregate.DefaultSmallest
	}
	if c.Markers.Todo == "" {
		c.Markers.Todo = scanner.DefaultTodoPattern
	}
	if c.Markers.Fixme == "" {
		c.Markers.Fixme = scanner.DefaultFixmePattern
	}
}

// Validate 检查配置取值是否合法。
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return errors.New("workers must be greater than 0")
	}
	if c.Top.Largest < 0 || c.Top.Smallest < 0 {
		return errors.New("top sizes must be greater than 0")
	}
	if _, err := regexp.Compile(c.Markers.Todo); err != nil {
		return fmt.Errorf("invalid todo pattern: %w", err)
	}
	if _, err := regexp.Compile(c.Markers.Fixme); err != nil {
		return fmt.Errorf("invalid fixme pattern: %w", err)
	}

	for i, language := range c.Languages {
		if len(language.Extensions) == 0 {
			return fmt.Errorf("languages[%d]: at least one extension is required", i)
		}
		for _, block := range language.BlockComments {
			if block.Start == "" || block.End == "" {
				return fmt.Errorf("languages[%d]: block comments need both start and end", i)
			}
		}
	}
	return nil
}

// ScanOptions 把配置转换为扫描服务参数。
func (c *Config) ScanOptions() scanner.Options {
	return scanner.Options{
		Workers:          c.Workers,
		ExcludeDirs:      append([]string(nil), c.ExcludeDirs...),
		SourceExtensions: append([]string(nil), c.SourceExtensions...),
		SkipExtensions:   append([]string(nil), c.SkipExtensions...),
		TodoPattern:      c.Markers.Todo,
		FixmePattern:     c.Markers.Fixme,
		Top: aggregate.Options{
			Largest:  c.Top.Largest,
			Smallest: c.Top.Smallest,
		},
	}
}

// Registry 基于内置表和自定义语言创建注释语法注册中心。
func (c *Config) Registry() *languages.Registry {
	extra := make([]languages.Language, 0, len(c.Languages))
	for _, item := range c.Languages {
		syntax := languages.CommentSyntax{LinePrefix: item.LineComment}
		for _, block := range item.BlockComments {
			syntax.Blocks = append(syntax.Blocks, languages.BlockDelimiter{Start: block.Start, End: block.End})
		}

		name := item.Name
		if name == "" {
			name = item.Extensions[0]
		}
		extra = append(extra, languages.Language{
			Name:       name,
			Extensions: item.Extensions,
			Syntax:     syntax,
		})
	}
	return languages.NewRegistry(extra...)
}
