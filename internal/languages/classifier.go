// Package languages 提供注释语法注册中心和基于子串匹配的行分类器。
package languages

import (
	"strings"

	"codestat/internal/model"
)

// Classify 把一组行划分为 code/comment/blank。
//
// 分类规则（顺序固定，不可调换）：
//  1. 去掉首尾空白后为空 → blank，不影响块注释状态
//  2. 处于块注释中 → comment；包含当前结束标记则退出块注释
//  3. 以行注释前缀开头 → comment
//  4. 包含某个块注释起始标记 → comment；同一行不包含对应结束标记则进入块注释
//  5. 其余 → code
//
// 标记检测基于子串，不识别字符串字面量，也不支持嵌套。
// 状态只在一次调用内有效，不会跨文件泄漏。
func Classify(lines []string, syntax CommentSyntax) model.LineMetrics {
	var metrics model.LineMetrics
	activeEnd := ""

	for _, line := range lines {
		metrics.Total++
		stripped := strings.TrimSpace(line)

		if stripped == "" {
			metrics.Blank++
			continue
		}

		if activeEnd != "" {
			metrics.Comment++
			if strings.Contains(stripped, activeEnd) {
				activeEnd = ""
			}
			continue
		}

		if syntax.LinePrefix != "" && strings.HasPrefix(stripped, syntax.LinePrefix) {
			metrics.Comment++
			continue
		}

		if end, opened := openBlock(stripped, syntax.Blocks); opened {
			metrics.Comment++
			activeEnd = end
			continue
		}

		metrics.Code++
	}

	return metrics
}

// openBlock 查找第一个出现在行内的块注释起始标记。
// 返回值 end 为需要在后续行中寻找的结束标记；单行闭合时为空。
func openBlock(line string, blocks []BlockDelimiter) (end string, opened bool) {
	for _, block := range blocks {
		if block.Start == "" {
			continue
		}
		if !strings.Contains(line, block.Start) {
			continue
		}
		// 结束标记出现在行内任意位置都视为单行闭合，包括出现在起始标记之前。
		if block.End == "" || strings.Contains(line, block.End) {
			return "", true
		}
		return block.End, true
	}
	return "", false
}
