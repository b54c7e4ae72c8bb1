package handlers

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/BaSui01/teamflow/types"
)

// maliciousPatterns 任务文本中不允许出现的标记
var maliciousPatterns = []string{"<script", "javascript:", "eval("}

// ValidateTaskInput 在创建任何流之前校验任务输入。
// 返回 nil 表示通过；否则返回带客户端可读信息的错误。
func ValidateTaskInput(task string, maxLength int) *types.Error {
	if strings.TrimSpace(task) == "" {
		return types.NewError(types.ErrInvalidRequest, "任务内容不能为空")
	}

	if utf8.RuneCountInString(task) > maxLength {
		return types.NewError(types.ErrInvalidRequest,
			fmt.Sprintf("任务内容过长（限制 %d 字符）", maxLength))
	}

	lower := strings.ToLower(task)
	for _, pattern := range maliciousPatterns {
		if strings.Contains(lower, pattern) {
			return types.NewError(types.ErrInvalidRequest,
				fmt.Sprintf("任务内容包含不允许的模式: %s", pattern))
		}
	}

	return nil
}
