// main.go 是 codestat 的程序入口，只负责注入版本号并把错误映射为退出码。
package main

import (
	"errors"
	"fmt"
	"os"

	"codestat/cmd"
	"codestat/internal/scanner"
)

// version 发布时通过 -ldflags "-X main.version=vX.Y.Z" 覆盖。
var version = "dev"

// 扫描根路径不是目录时返回 2，其余错误返回 1。
const (
	exitFailure     = 1
	exitInvalidRoot = 2
)

func main() {
	if err := cmd.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "codestat error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.Is(err, scanner.ErrRootNotDirectory) {
		return exitInvalidRoot
	}
	return exitFailure
}
