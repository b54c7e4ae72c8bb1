package workers

import (
	"context"

	"github.com/BaSui01/teamflow/team"
	"github.com/BaSui01/teamflow/types"
)

// RuleDecider 确定性规则决策器：按配置顺序访问每个尚未产出过
// 消息的成员，全部访问过后选择 FINISH。
//
// 真实部署中监督者的决策函数由 LLM 实现（外部协作者）；
// 规则决策器让桩系统可以端到端运行且结果可复现。
type RuleDecider struct{}

// NewRuleDecider 创建规则决策器
func NewRuleDecider() *RuleDecider {
	return &RuleDecider{}
}

// Decide 选择首个未访问成员，或 FINISH。
func (RuleDecider) Decide(_ context.Context, history []types.Message, members []string) (team.RouteDecision, error) {
	for _, m := range members {
		if !visited(history, m) {
			return team.RouteDecision{Next: m}, nil
		}
	}
	return team.RouteDecision{Next: team.Finish}, nil
}

func visited(history []types.Message, node string) bool {
	for _, msg := range history {
		if msg.Node == node {
			return true
		}
	}
	return false
}
