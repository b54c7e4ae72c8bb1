package stream

import (
	"context"
	"sync"

	"github.com/BaSui01/teamflow/internal/metrics"
	"github.com/BaSui01/teamflow/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultQueueSize 每个流的事件队列缓冲大小
const DefaultQueueSize = 256

// entry 一个注册的流：FIFO 队列 + 生产者取消上下文。
// 队列只有一个生产者和一个消费者；队列本身无需额外加锁，
// 注册表的读写锁只保护 create/remove 的一致性。
type entry struct {
	id     string
	ch     chan types.ExecutionEvent
	ctx    context.Context
	cancel context.CancelFunc
}

// Manager 流注册表。进程内应只有一个实例，作为显式依赖注入，
// 而非包级单例。
type Manager struct {
	mu        sync.RWMutex
	streams   map[string]*entry
	queueSize int
	collector *metrics.Collector
	logger    *zap.Logger
}

// NewManager 创建流注册表。collector 可为 nil。
func NewManager(queueSize int, collector *metrics.Collector, logger *zap.Logger) *Manager {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		streams:   make(map[string]*entry),
		queueSize: queueSize,
		collector: collector,
		logger:    logger.With(zap.String("component", "stream_manager")),
	}
}

// Create 注册一个新流，返回流 ID 与生产者上下文。
// 生产者后台任务应以返回的上下文启动：Remove 取消它。
func (m *Manager) Create(parent context.Context) (string, context.Context) {
	if parent == nil {
		parent = context.Background()
	}

	id := "stream_" + uuid.NewString()
	ctx, cancel := context.WithCancel(parent)

	m.mu.Lock()
	m.streams[id] = &entry{
		id:     id,
		ch:     make(chan types.ExecutionEvent, m.queueSize),
		ctx:    ctx,
		cancel: cancel,
	}
	m.mu.Unlock()

	m.collector.StreamCreated()
	m.logger.Debug("stream created", zap.String("stream_id", id))
	return id, ctx
}

// Send 向指定流入队一个事件（FIFO）。
// 流不存在时为空操作；流已被移除（上下文取消）时丢弃事件。
// 两种情况都不使调用方失败。
func (m *Manager) Send(id string, ev types.ExecutionEvent) {
	m.mu.RLock()
	e, ok := m.streams[id]
	m.mu.RUnlock()
	if !ok {
		return
	}

	ev.StreamID = id
	select {
	case e.ch <- ev:
		m.collector.RecordEvent(string(ev.Type))
	case <-e.ctx.Done():
		// 消费方已离开，丢弃迟到事件
	}
}

// Close 入队终止 end 事件。队列保留，由消费方退出时 Remove 删除。
func (m *Manager) Close(id string) {
	m.Send(id, types.NewEvent(types.EventEnd, "系统", "Stream completed"))
	m.logger.Debug("stream closed", zap.String("stream_id", id))
}

// Remove 取消流上下文并删除队列。幂等：缺失 ID 时不报错。
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	e, ok := m.streams[id]
	if ok {
		delete(m.streams, id)
	}
	m.mu.Unlock()

	if !ok {
		return
	}
	e.cancel()
	m.collector.StreamRemoved()
	m.logger.Debug("stream removed", zap.String("stream_id", id))
}

// Events 返回指定流的消费通道。
func (m *Manager) Events(id string) (<-chan types.ExecutionEvent, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.streams[id]
	if !ok {
		return nil, false
	}
	return e.ch, true
}

// Count 返回当前注册的流数量。
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.streams)
}
