package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/BaSui01/teamflow/internal/metrics"
	"github.com/BaSui01/teamflow/scheduler"
	"github.com/BaSui01/teamflow/stream"
	"github.com/BaSui01/teamflow/types"
	"go.uber.org/zap"
)

// =============================================================================
// 💬 聊天接口 Handler
// =============================================================================

// TaskRunner 任务调度入口（由 *scheduler.Scheduler 满足）
type TaskRunner interface {
	Run(ctx context.Context, task string) <-chan types.ExecutionEvent
}

// ChatRequest 聊天请求
type ChatRequest struct {
	Task   string `json:"task"`
	Stream bool   `json:"stream,omitempty"`
}

// ChatResult 同步聊天响应数据
type ChatResult struct {
	Task   string                 `json:"task"`
	Result string                 `json:"result"`
	Plan   []string               `json:"plan,omitempty"`
	Steps  []types.ExecutionEvent `json:"steps"`
}

// Config 聊天处理器配置
type Config struct {
	// PollTimeout 消费端空轮询超时
	PollTimeout time.Duration
	// MaxTaskLength 任务最大字符数
	MaxTaskLength int
}

// ChatHandler 聊天接口处理器：同步 /chat、SSE /stream-chat、WebSocket /ws-chat。
type ChatHandler struct {
	runner    TaskRunner
	planner   scheduler.Planner
	streams   *stream.Manager
	collector *metrics.Collector
	config    Config
	logger    *zap.Logger
}

// NewChatHandler 创建聊天处理器。collector 可为 nil。
func NewChatHandler(
	runner TaskRunner,
	planner scheduler.Planner,
	streams *stream.Manager,
	collector *metrics.Collector,
	config Config,
	logger *zap.Logger,
) *ChatHandler {
	if config.PollTimeout <= 0 {
		config.PollTimeout = 100 * time.Millisecond
	}
	if config.MaxTaskLength <= 0 {
		config.MaxTaskLength = 5000
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatHandler{
		runner:    runner,
		planner:   planner,
		streams:   streams,
		collector: collector,
		config:    config,
		logger:    logger.With(zap.String("component", "chat_handler")),
	}
}

// HandleChat 处理同步聊天请求：收集全部事件后一次性返回。
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	if !ValidateContentType(w, r, h.logger) {
		return
	}

	var req ChatRequest
	if err := DecodeJSONBody(w, r, &req, h.logger); err != nil {
		return
	}

	if verr := ValidateTaskInput(req.Task, h.config.MaxTaskLength); verr != nil {
		WriteError(w, verr, h.logger)
		return
	}

	start := time.Now()
	var steps []types.ExecutionEvent
	var finalMessage string
	outcome := "success"

	for ev := range h.runner.Run(r.Context(), req.Task) {
		steps = append(steps, ev)
		switch ev.Type {
		case types.EventFinal:
			finalMessage = ev.Message
		case types.EventError:
			outcome = "error"
		}
	}
	h.collector.RecordTask(outcome, time.Since(start))

	h.logger.Info("chat completed",
		zap.Int("steps", len(steps)),
		zap.String("outcome", outcome),
		zap.Duration("duration", time.Since(start)),
	)

	var plan []string
	if h.planner != nil {
		plan = h.planner.Plan(req.Task)
	}

	WriteSuccess(w, ChatResult{
		Task:   req.Task,
		Result: finalMessage,
		Plan:   plan,
		Steps:  steps,
	})
}

// produce 后台生产者：驱动调度器并把事件写入流队列。
// 调度器事件耗尽后入队终止 end 事件；流已被移除时 Send 为空操作。
func (h *ChatHandler) produce(ctx context.Context, streamID, task string) {
	start := time.Now()
	outcome := "success"

	for ev := range h.runner.Run(ctx, task) {
		if ev.Type == types.EventError {
			outcome = "error"
		}
		h.streams.Send(streamID, ev)
	}

	h.streams.Close(streamID)
	h.collector.RecordTask(outcome, time.Since(start))
}
