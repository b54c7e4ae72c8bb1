package handlers

import (
	"strings"
	"testing"

	"github.com/BaSui01/teamflow/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTaskInput(t *testing.T) {
	tests := []struct {
		name    string
		task    string
		wantErr bool
		wantMsg string
	}{
		{
			name:    "valid task",
			task:    "研究量子计算并撰写报告",
			wantErr: false,
		},
		{
			name:    "plain english task",
			task:    "hello",
			wantErr: false,
		},
		{
			name:    "empty task",
			task:    "",
			wantErr: true,
			wantMsg: "任务内容不能为空",
		},
		{
			name:    "whitespace only",
			task:    "   \t\n  ",
			wantErr: true,
			wantMsg: "任务内容不能为空",
		},
		{
			name:    "too long",
			task:    strings.Repeat("长", 5001),
			wantErr: true,
			wantMsg: "任务内容过长",
		},
		{
			name:    "exactly at limit",
			task:    strings.Repeat("长", 5000),
			wantErr: false,
		},
		{
			name:    "script tag",
			task:    "please run <script>alert(1)</script>",
			wantErr: true,
			wantMsg: "不允许的模式",
		},
		{
			name:    "script tag uppercase",
			task:    "please run <SCRIPT>alert(1)</SCRIPT>",
			wantErr: true,
			wantMsg: "不允许的模式",
		},
		{
			name:    "javascript url",
			task:    "open javascript:void(0)",
			wantErr: true,
			wantMsg: "不允许的模式",
		},
		{
			name:    "eval call",
			task:    "eval(document.cookie)",
			wantErr: true,
			wantMsg: "不允许的模式",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTaskInput(tt.task, 5000)
			if !tt.wantErr {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, types.ErrInvalidRequest, err.Code)
			assert.Contains(t, err.Message, tt.wantMsg)
		})
	}
}

func TestValidateTaskInput_CustomLimit(t *testing.T) {
	err := ValidateTaskInput("hello world", 5)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "限制 5 字符")
}
