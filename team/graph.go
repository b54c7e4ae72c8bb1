package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/BaSui01/teamflow/types"
	"go.uber.org/zap"
)

// Step 一次成员执行的可观测产出，按执行顺序发出。
type Step struct {
	// Node 本次执行的成员名
	Node string
	// Messages 本次执行追加到历史的消息
	Messages []types.Message
	// Err 图级致命错误（仅出现在最后一个 Step）
	Err error
}

// Graph 团队执行图状态机。
// 状态：entry → supervisor → member_i → supervisor → … → terminal。
// 每次成员执行后控制权必然回到监督者；步数上限防止无限往返。
type Graph struct {
	name       string
	supervisor *Supervisor
	members    map[string]Member
	order      []string
	stepLimit  int
	logger     *zap.Logger
}

// NewGraph 创建团队图。成员名在图内必须唯一（构造期检查）。
func NewGraph(name string, decider Decider, stepLimit int, logger *zap.Logger, members ...Member) (*Graph, error) {
	if name == "" {
		return nil, fmt.Errorf("graph requires a name")
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("graph %s requires at least one member", name)
	}
	if stepLimit <= 0 {
		return nil, fmt.Errorf("graph %s requires a positive step limit", name)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	byName := make(map[string]Member, len(members))
	order := make([]string, 0, len(members))
	for _, m := range members {
		if m.Name == "" {
			return nil, fmt.Errorf("graph %s has a member without a name", name)
		}
		if _, dup := byName[m.Name]; dup {
			return nil, fmt.Errorf("graph %s has duplicate member %s", name, m.Name)
		}
		byName[m.Name] = m
		order = append(order, m.Name)
	}

	supervisor, err := NewSupervisor(order, decider, logger)
	if err != nil {
		return nil, err
	}

	return &Graph{
		name:       name,
		supervisor: supervisor,
		members:    byName,
		order:      order,
		stepLimit:  stepLimit,
		logger:     logger.With(zap.String("component", "team_graph"), zap.String("team", name)),
	}, nil
}

// Name 返回图名
func (g *Graph) Name() string {
	return g.name
}

// MemberNames 返回成员名（构造顺序）
func (g *Graph) MemberNames() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Member returns the named member.
func (g *Graph) Member(name string) (Member, bool) {
	m, ok := g.members[name]
	return m, ok
}

// Run 运行图到终止，返回累积的消息历史。
func (g *Graph) Run(ctx context.Context, task string) ([]types.Message, error) {
	history := []types.Message{types.NewUserMessage(task)}
	return g.run(ctx, history, nil)
}

// Stream 运行图并按执行顺序发出每次成员执行的 Step。
// 通道关闭即为完成哨兵；致命错误作为最后一个 Step 的 Err 发出。
func (g *Graph) Stream(ctx context.Context, task string) <-chan Step {
	out := make(chan Step)
	go func() {
		defer close(out)

		emit := func(step Step) bool {
			select {
			case out <- step:
				return true
			case <-ctx.Done():
				return false
			}
		}

		history := []types.Message{types.NewUserMessage(task)}
		if _, err := g.run(ctx, history, emit); err != nil {
			emit(Step{Err: err})
		}
	}()
	return out
}

// run 执行监督循环。emit 为空时只累积历史。
func (g *Graph) run(ctx context.Context, history []types.Message, emit func(Step) bool) ([]types.Message, error) {
	for decisions := 0; ; decisions++ {
		select {
		case <-ctx.Done():
			return history, ctx.Err()
		default:
		}

		if decisions >= g.stepLimit {
			g.logger.Error("step limit exceeded", zap.Int("limit", g.stepLimit))
			return history, types.NewError(types.ErrStepLimitExceeded,
				fmt.Sprintf("team %s exceeded %d supervisor decisions", g.name, g.stepLimit))
		}

		decision, err := g.supervisor.Decide(ctx, history)
		if err != nil {
			return history, err
		}
		if decision.Next == Finish {
			g.logger.Debug("graph finished", zap.Int("decisions", decisions+1))
			return history, nil
		}

		member := g.members[decision.Next]
		msgs, err := member.invoke(ctx, history)
		if err != nil {
			if fatal(err) {
				return history, err
			}
			// 工作者失败转换为错误标记消息写回历史，
			// 监督者据此观察并重新路由，不中断图
			errMsg := types.NewErrorMessage(member.Name, fmt.Sprintf("节点执行失败: %v", err))
			history = append(history, errMsg)
			g.logger.Warn("member failed",
				zap.String("member", member.Name),
				zap.Error(err),
			)
			if emit != nil && !emit(Step{Node: member.Name, Messages: []types.Message{errMsg}}) {
				return history, ctx.Err()
			}
			continue
		}

		history = append(history, msgs...)
		if emit != nil && !emit(Step{Node: member.Name, Messages: msgs}) {
			return history, ctx.Err()
		}
	}
}

// fatal 判断成员返回的错误是否终止整个图。
// 步数超限与决策函数失败（含嵌套子图内发生的）是任务级致命错误；
// 其余视为可观察的工作者失败。
func fatal(err error) bool {
	switch types.GetErrorCode(err) {
	case types.ErrStepLimitExceeded, types.ErrDecisionFailed:
		return true
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
