package team

import (
	"context"
	"fmt"

	"github.com/BaSui01/teamflow/types"
)

// MaxLevels 层级树的最大深度（顶层主管 → 团队主管 → 工作节点）
const MaxLevels = 3

// Hierarchy 将嵌套的团队图组合为一棵树，根图作为唯一可调用入口。
// 自底向上构建：叶子图先包装为 SubTeamMember，再挂到上一层。
// 跨层无环由构造方式保证，无需运行时检测。
type Hierarchy struct {
	root *Graph
}

// NewHierarchy 以 root 为入口创建层级。深度超过 MaxLevels 时报错。
func NewHierarchy(root *Graph) (*Hierarchy, error) {
	if root == nil {
		return nil, fmt.Errorf("hierarchy requires a root graph")
	}
	if depth := graphDepth(root); depth > MaxLevels {
		return nil, fmt.Errorf("hierarchy depth %d exceeds maximum %d", depth, MaxLevels)
	}
	return &Hierarchy{root: root}, nil
}

// Root 返回根图
func (h *Hierarchy) Root() *Graph {
	return h.root
}

// Depth 返回层级树深度
func (h *Hierarchy) Depth() int {
	return graphDepth(h.root)
}

// Run 运行根图到终止，返回最终历史。
func (h *Hierarchy) Run(ctx context.Context, task string) ([]types.Message, error) {
	return h.root.Run(ctx, task)
}

// Stream 以流式方式运行根图，按执行顺序发出 (节点, 产出) 对。
func (h *Hierarchy) Stream(ctx context.Context, task string) <-chan Step {
	return h.root.Stream(ctx, task)
}

// NodeInfo 层级描述中的一个节点
type NodeInfo struct {
	Name    string     `json:"name"`
	Layer   int        `json:"layer"`
	IsTeam  bool       `json:"is_team"`
	Members []NodeInfo `json:"members,omitempty"`
}

// Describe 返回整棵树的结构描述（用于 /agents 等展示接口）。
func (h *Hierarchy) Describe() NodeInfo {
	return describeGraph(h.root, 1)
}

func describeGraph(g *Graph, layer int) NodeInfo {
	info := NodeInfo{
		Name:   g.Name(),
		Layer:  layer,
		IsTeam: true,
	}
	for _, name := range g.MemberNames() {
		m, _ := g.Member(name)
		if m.IsSubTeam() {
			child := describeGraph(m.SubGraph(), layer+1)
			child.Name = name
			info.Members = append(info.Members, child)
		} else {
			info.Members = append(info.Members, NodeInfo{Name: name, Layer: layer + 1})
		}
	}
	return info
}

func graphDepth(g *Graph) int {
	depth := 1
	for _, name := range g.MemberNames() {
		m, _ := g.Member(name)
		if m.IsSubTeam() {
			if d := 1 + graphDepth(m.SubGraph()); d > depth {
				depth = d
			}
		}
	}
	return depth
}
