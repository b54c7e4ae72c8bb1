package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/BaSui01/teamflow/types"
	"github.com/coder/websocket"
	"go.uber.org/zap"
)

// =============================================================================
// 🔌 WebSocket 流式传输
// =============================================================================

// wsRequest WebSocket 首条消息：提交要执行的任务
type wsRequest struct {
	Task string `json:"task"`
}

// HandleWSChat 处理 WebSocket 流式聊天。
// 客户端发送一条 {"task": "..."} 消息，服务端按发射顺序推送
// 执行事件（每条一帧 JSON），end 事件后正常关闭连接。
func (h *ChatHandler) HandleWSChat(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.logger.Warn("websocket accept failed", zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusInternalError, "unexpected close")

	ctx := r.Context()

	// 任务可由查询参数携带，否则取首条 JSON 消息
	req := wsRequest{Task: r.URL.Query().Get("task")}
	if req.Task == "" {
		_, data, err := conn.Read(ctx)
		if err != nil {
			h.logger.Debug("websocket read failed", zap.Error(err))
			return
		}
		if err := json.Unmarshal(data, &req); err != nil {
			writeWSError(ctx, conn, types.NewError(types.ErrInvalidRequest, "请求格式错误"))
			conn.Close(websocket.StatusUnsupportedData, "invalid request")
			return
		}
	}

	if verr := ValidateTaskInput(req.Task, h.config.MaxTaskLength); verr != nil {
		writeWSError(ctx, conn, verr)
		conn.Close(websocket.StatusNormalClosure, "invalid task")
		return
	}

	streamID, sctx := h.streams.Create(ctx)
	defer h.streams.Remove(streamID)

	events, ok := h.streams.Events(streamID)
	if !ok {
		writeWSError(ctx, conn, types.NewError(types.ErrStreamClosed, "stream unavailable"))
		conn.Close(websocket.StatusInternalError, "stream unavailable")
		return
	}

	go h.produce(sctx, streamID, req.Task)

	h.logger.Info("websocket stream opened", zap.String("stream_id", streamID))

	connEv := types.NewEvent(types.EventConnection, "系统", "连接已建立").WithStream(streamID)
	if err := writeWSEvent(ctx, conn, connEv); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("websocket client disconnected", zap.String("stream_id", streamID))
			return

		case ev, open := <-events:
			if !open {
				conn.Close(websocket.StatusNormalClosure, "done")
				return
			}
			if err := writeWSEvent(ctx, conn, ev); err != nil {
				h.logger.Debug("websocket write failed",
					zap.String("stream_id", streamID), zap.Error(err))
				return
			}
			if ev.Type.Terminal() {
				h.logger.Info("websocket stream completed", zap.String("stream_id", streamID))
				conn.Close(websocket.StatusNormalClosure, "done")
				return
			}

		case <-time.After(h.config.PollTimeout):
		}
	}
}

// writeWSEvent 把一个事件编码为一帧 JSON 文本消息。
func writeWSEvent(ctx context.Context, conn *websocket.Conn, ev types.ExecutionEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, data)
}

func writeWSError(ctx context.Context, conn *websocket.Conn, werr *types.Error) {
	ev := types.NewEvent(types.EventError, "系统", werr.Message).
		WithExtra("code", string(werr.Code))
	_ = writeWSEvent(ctx, conn, ev)
}
