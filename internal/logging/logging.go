// Package logging 提供 codestat 全局共享的结构化日志实例。
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Logger 是所有包共用的日志实例。
// 默认丢弃全部输出，只有开启 debug 后才会写出。
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// logFile 是 --debug-file 打开的文件，由 Close 释放。
var logFile *os.File

// Initialize 根据 debug 开关与日志文件配置日志输出。
//
// 环境变量：
// - CODESTAT_DEBUG=1 强制开启 debug
// - CODESTAT_DEBUG_FILE 在未显式指定 debugFile 时作为日志文件路径
//
// 未指定日志文件时写入 fallback（通常是 stderr）。
func Initialize(debug bool, debugFile string, fallback io.Writer) error {
	if err := Close(); err != nil {
		return err
	}

	if os.Getenv("CODESTAT_DEBUG") == "1" {
		debug = true
	}
	if envDebugFile := os.Getenv("CODESTAT_DEBUG_FILE"); envDebugFile != "" && debugFile == "" {
		debugFile = envDebugFile
	}

	if !debug && debugFile == "" {
		Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return nil
	}

	writer := fallback
	if debugFile != "" {
		if err := os.MkdirAll(filepath.Dir(debugFile), 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		file, err := os.OpenFile(debugFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = file
		writer = file
	}

	Logger = slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: slog.LevelDebug}))
	Logger.Debug("debug logging initialized", "log_file", debugFile)
	return nil
}

// Close 关闭日志文件并把 Logger 恢复为丢弃输出，可重复调用。
func Close() error {
	if logFile == nil {
		return nil
	}
	file := logFile
	logFile = nil
	Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	if err := file.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}
