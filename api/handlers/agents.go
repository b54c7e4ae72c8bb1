package handlers

import (
	"net/http"

	"github.com/BaSui01/teamflow/scheduler"
	"github.com/BaSui01/teamflow/team"
)

// =============================================================================
// 🗂️ 团队结构查询
// =============================================================================

// AgentNode 对外展示的团队树节点：结构信息附加显示名
type AgentNode struct {
	Name        string      `json:"name"`
	DisplayName string      `json:"display_name"`
	Layer       int         `json:"layer"`
	IsTeam      bool        `json:"is_team"`
	Members     []AgentNode `json:"members,omitempty"`
}

// AgentsHandler 团队结构查询处理器
type AgentsHandler struct {
	hierarchy *team.Hierarchy
}

// NewAgentsHandler 创建团队结构查询处理器
func NewAgentsHandler(h *team.Hierarchy) *AgentsHandler {
	return &AgentsHandler{hierarchy: h}
}

// HandleAgents 处理 GET /agents：返回完整的层级团队树。
func (h *AgentsHandler) HandleAgents(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]any{
		"hierarchy":  toAgentNode(h.hierarchy.Describe()),
		"max_levels": team.MaxLevels,
		"depth":      h.hierarchy.Depth(),
	})
}

func toAgentNode(info team.NodeInfo) AgentNode {
	node := AgentNode{
		Name:        info.Name,
		DisplayName: scheduler.DisplayName(info.Name),
		Layer:       info.Layer,
		IsTeam:      info.IsTeam,
	}
	for _, m := range info.Members {
		node.Members = append(node.Members, toAgentNode(m))
	}
	return node
}
