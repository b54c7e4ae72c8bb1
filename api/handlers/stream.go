package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/BaSui01/teamflow/types"
	"go.uber.org/zap"
)

// =============================================================================
// 📡 SSE 流式传输
// =============================================================================

// HandleStreamChat 处理 SSE 流式聊天请求。
// 每次请求创建一个独立流；连接断开或收到 end 事件后移除流，
// 取消生产者上下文，丢弃后续事件。
func (h *ChatHandler) HandleStreamChat(w http.ResponseWriter, r *http.Request) {
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

	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, types.NewError(types.ErrInternalError, "streaming unsupported by connection").
			WithHTTPStatus(http.StatusInternalServerError), h.logger)
		return
	}

	streamID, sctx := h.streams.Create(r.Context())
	defer h.streams.Remove(streamID)

	events, ok := h.streams.Events(streamID)
	if !ok {
		WriteError(w, types.NewError(types.ErrStreamClosed, "stream unavailable"), h.logger)
		return
	}

	go h.produce(sctx, streamID, req.Task)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	h.logger.Info("sse stream opened",
		zap.String("stream_id", streamID),
		zap.Int("task_length", len(req.Task)),
	)

	// 连接确认先于任何执行事件
	conn := types.NewEvent(types.EventConnection, "系统", "连接已建立").WithStream(streamID)
	if err := writeSSE(w, flusher, conn); err != nil {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			h.logger.Debug("sse client disconnected", zap.String("stream_id", streamID))
			return

		case ev, open := <-events:
			if !open {
				return
			}
			if err := writeSSE(w, flusher, ev); err != nil {
				h.logger.Debug("sse write failed",
					zap.String("stream_id", streamID), zap.Error(err))
				return
			}
			if ev.Type.Terminal() {
				h.logger.Info("sse stream completed", zap.String("stream_id", streamID))
				return
			}

		case <-time.After(h.config.PollTimeout):
			// 空轮询：让出以便及时观察到断连
		}
	}
}

// sseErrorFrame 事件编码失败时的降级错误帧。预序列化，编码失败的事件
// 无法再走正常编码路径。
var sseErrorFrame = []byte(`data: {"type":"error","agent":"系统","message":"事件编码失败"}` + "\n\n")

// writeSSE 把一个事件编码为一条 SSE data 帧并立即冲刷。
// 编码失败时尽力写出一条错误帧再报错，消费方不会无声断流。
func writeSSE(w http.ResponseWriter, flusher http.Flusher, ev types.ExecutionEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		_, _ = w.Write(sseErrorFrame)
		flusher.Flush()
		return fmt.Errorf("marshal event: %w", err)
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
