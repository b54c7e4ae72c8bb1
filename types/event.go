package types

import "time"

// EventType 执行事件类型
type EventType string

const (
	EventThinking   EventType = "thinking"   // 节点思考/分析中
	EventStatus     EventType = "status"     // 状态更新
	EventResult     EventType = "result"     // 结果片段（增量）
	EventFinal      EventType = "final"      // 最终汇总
	EventError      EventType = "error"      // 错误
	EventEnd        EventType = "end"        // 终止哨兵
	EventConnection EventType = "connection" // 连接确认
)

// Terminal reports whether the event type terminates a stream.
func (t EventType) Terminal() bool {
	return t == EventEnd
}

// ExecutionEvent is one unit of observable task progress. Events are produced
// by the scheduler, queued per stream, and delivered to the client in emission
// order. Ordering within one task is delivery-significant.
type ExecutionEvent struct {
	Type      EventType      `json:"type"`
	Agent     string         `json:"agent"`
	Message   string         `json:"message"`
	Node      string         `json:"node,omitempty"`
	StreamID  string         `json:"stream_id,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// NewEvent creates an event with the current timestamp.
func NewEvent(t EventType, agent, message string) ExecutionEvent {
	return ExecutionEvent{
		Type:      t,
		Agent:     agent,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithNode sets the originating node identifier.
func (e ExecutionEvent) WithNode(node string) ExecutionEvent {
	e.Node = node
	return e
}

// WithStream sets the owning stream id.
func (e ExecutionEvent) WithStream(id string) ExecutionEvent {
	e.StreamID = id
	return e
}

// WithExtra adds one key to the extra bag.
func (e ExecutionEvent) WithExtra(key string, value any) ExecutionEvent {
	if e.Extra == nil {
		e.Extra = make(map[string]any, 1)
	}
	e.Extra[key] = value
	return e
}
