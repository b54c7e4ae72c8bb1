package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNodeMessage(t *testing.T) {
	m := NewNodeMessage("searcher", "WebSearch result for: AI agents")

	assert.Equal(t, "searcher", m.Author)
	assert.Equal(t, "searcher", m.Node)
	assert.Equal(t, "WebSearch result for: AI agents", m.Content)
	assert.False(t, m.IsError)
	assert.False(t, m.Timestamp.IsZero())
}

func TestNewErrorMessage(t *testing.T) {
	m := NewErrorMessage("web_crawler", "爬取失败: timeout")

	assert.True(t, m.IsError)
	assert.Equal(t, "web_crawler", m.Node)
}

func TestLastContent(t *testing.T) {
	assert.Empty(t, LastContent(nil))

	history := []Message{
		NewUserMessage("task"),
		NewNodeMessage("writer", "done"),
	}
	assert.Equal(t, "done", LastContent(history))
}

func TestError_WrapUnwrap(t *testing.T) {
	cause := assert.AnError
	err := NewError(ErrWorkerFailed, "worker invocation failed").WithCause(cause)

	assert.Contains(t, err.Error(), "WORKER_FAILED")
	assert.Contains(t, err.Error(), cause.Error())
	assert.Equal(t, cause, err.Unwrap())
	assert.Equal(t, ErrWorkerFailed, GetErrorCode(err))
	assert.Equal(t, ErrorCode(""), GetErrorCode(cause))
}
