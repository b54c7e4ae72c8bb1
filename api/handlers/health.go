package handlers

import (
	"net/http"
	"time"

	"github.com/BaSui01/teamflow/stream"
)

// =============================================================================
// 🩺 健康检查
// =============================================================================

// HealthStatus 健康检查响应数据
type HealthStatus struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	ActiveStreams int    `json:"active_streams"`
	Uptime        string `json:"uptime"`
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	version string
	streams *stream.Manager
	started time.Time
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(version string, streams *stream.Manager) *HealthHandler {
	return &HealthHandler{
		version: version,
		streams: streams,
		started: time.Now(),
	}
}

// HandleHealth 处理 GET /health
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, HealthStatus{
		Status:        "healthy",
		Version:       h.version,
		ActiveStreams: h.streams.Count(),
		Uptime:        time.Since(h.started).Round(time.Second).String(),
	})
}
