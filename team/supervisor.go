package team

import (
	"context"
	"fmt"

	"github.com/BaSui01/teamflow/types"
	"go.uber.org/zap"
)

// Finish 终止标记：监督者选择它时结束所在团队图的循环。
const Finish = "FINISH"

// RouteDecision 路由决策，指向下一个成员或 Finish。
// 即产即用，不持久化。
type RouteDecision struct {
	Next string `json:"next"`
}

// Decider 决策函数接口（外部协作者）。
// 给定当前子任务的完整消息历史与候选成员名，返回下一步。
// 返回值可能缺失或不在候选集合内，由 Supervisor 容错处理。
type Decider interface {
	Decide(ctx context.Context, history []types.Message, members []string) (RouteDecision, error)
}

// DeciderFunc 函数适配器
type DeciderFunc func(ctx context.Context, history []types.Message, members []string) (RouteDecision, error)

func (f DeciderFunc) Decide(ctx context.Context, history []types.Message, members []string) (RouteDecision, error) {
	return f(ctx, history, members)
}

// Supervisor 监督节点：绑定固定成员集合 + 终止选项的决策器。
type Supervisor struct {
	members []string
	decider Decider
	logger  *zap.Logger
}

// NewSupervisor 创建监督节点。members 为候选成员名（有序，首个为回退默认值）。
func NewSupervisor(members []string, decider Decider, logger *zap.Logger) (*Supervisor, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("supervisor requires at least one member")
	}
	if decider == nil {
		return nil, fmt.Errorf("supervisor requires a decider")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Supervisor{
		members: members,
		decider: decider,
		logger:  logger.With(zap.String("component", "supervisor")),
	}, nil
}

// Members 返回候选成员名
func (s *Supervisor) Members() []string {
	out := make([]string, len(s.members))
	copy(out, s.members)
	return out
}

// Decide 做一次路由决策。
// 决策函数返回未识别或缺失的 next 时，确定性回退到首个成员
// （显式的韧性策略，而非静默丢弃）；决策函数本身出错则作为
// 节点级错误向上传播。
func (s *Supervisor) Decide(ctx context.Context, history []types.Message) (RouteDecision, error) {
	decision, err := s.decider.Decide(ctx, history, s.Members())
	if err != nil {
		return RouteDecision{}, types.NewError(types.ErrDecisionFailed, "decision function failed").WithCause(err)
	}

	if decision.Next == Finish || s.isMember(decision.Next) {
		return decision, nil
	}

	fallback := s.members[0]
	s.logger.Warn("unrecognized route, falling back to default member",
		zap.String("next", decision.Next),
		zap.String("fallback", fallback),
	)
	return RouteDecision{Next: fallback}, nil
}

func (s *Supervisor) isMember(name string) bool {
	for _, m := range s.members {
		if m == name {
			return true
		}
	}
	return false
}
