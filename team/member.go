package team

import (
	"context"
	"fmt"

	"github.com/BaSui01/teamflow/types"
)

// Capability 工作者能力接口（外部协作单元）。
// 接受文本指令与当前消息历史，异步产出结果消息或失败。
// 具体任务逻辑（搜索、写作、图表）对核心不透明。
type Capability interface {
	Invoke(ctx context.Context, instruction string, history []types.Message) ([]types.Message, error)
}

// CapabilityFunc 函数适配器
type CapabilityFunc func(ctx context.Context, instruction string, history []types.Message) ([]types.Message, error)

func (f CapabilityFunc) Invoke(ctx context.Context, instruction string, history []types.Message) ([]types.Message, error) {
	return f(ctx, instruction, history)
}

// Member 团队成员：Worker 或 SubTeam 的标签变体。
// 父图的监督者统一分派两种变体，无需继承体系。
type Member struct {
	Name   string
	worker Capability
	sub    *Graph
}

// WorkerMember 将一个能力单元包装为成员。
func WorkerMember(name string, capability Capability) Member {
	return Member{Name: name, worker: capability}
}

// SubTeamMember 将一个嵌套团队图包装为成员。
// 对父图表现为单个可调用节点。
func SubTeamMember(name string, sub *Graph) Member {
	return Member{Name: name, sub: sub}
}

// IsSubTeam reports whether the member wraps a nested team graph.
func (m Member) IsSubTeam() bool {
	return m.sub != nil
}

// SubGraph returns the nested graph for SubTeam members, nil otherwise.
func (m Member) SubGraph() *Graph {
	return m.sub
}

// invoke 执行成员并返回以成员名标记的产出消息。
// SubTeam 变体将内部图运行到终止，并把最终结果折叠为单条消息。
func (m Member) invoke(ctx context.Context, history []types.Message) ([]types.Message, error) {
	instruction := types.LastContent(history)

	if m.sub != nil {
		subHistory, err := m.sub.Run(ctx, instruction)
		if err != nil {
			return nil, err
		}
		return []types.Message{types.NewNodeMessage(m.Name, types.LastContent(subHistory))}, nil
	}

	if m.worker == nil {
		return nil, fmt.Errorf("member %s has no capability", m.Name)
	}

	msgs, err := m.worker.Invoke(ctx, instruction, history)
	if err != nil {
		return nil, err
	}

	// 统一以成员名标记产出，保证历史可归属
	tagged := make([]types.Message, 0, len(msgs))
	for _, msg := range msgs {
		msg.Author = m.Name
		msg.Node = m.Name
		tagged = append(tagged, msg)
	}
	return tagged, nil
}
