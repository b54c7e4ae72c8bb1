package types

import "time"

// Message represents one entry in a task's accumulating conversation history.
// The history is append-only and shared by all nodes of one task execution.
type Message struct {
	// Author 消息作者（用户或产生消息的节点名）
	Author string `json:"author"`
	// Content 消息正文
	Content string `json:"content"`
	// Node 产生该消息的节点标识（用户消息为空）
	Node string `json:"node,omitempty"`
	// Incremental 标记该消息是增量片段而非完整结果
	Incremental bool `json:"incremental,omitempty"`
	// IsError 标记该消息由节点失败转换而来
	IsError   bool      `json:"is_error,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// NewUserMessage creates a message authored by the requesting user.
func NewUserMessage(content string) Message {
	return Message{
		Author:    "user",
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewNodeMessage creates a message produced by a named node.
func NewNodeMessage(node, content string) Message {
	return Message{
		Author:    node,
		Content:   content,
		Node:      node,
		Timestamp: time.Now(),
	}
}

// NewErrorMessage creates an error-flagged message for a failed node.
// 节点失败被转换为数据写回历史，而不是中断整个图。
func NewErrorMessage(node, content string) Message {
	m := NewNodeMessage(node, content)
	m.IsError = true
	return m
}

// LastContent returns the content of the last message in history,
// or the empty string for an empty history.
func LastContent(history []Message) string {
	if len(history) == 0 {
		return ""
	}
	return history[len(history)-1].Content
}
