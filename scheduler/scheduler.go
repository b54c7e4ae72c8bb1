package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BaSui01/teamflow/team"
	"github.com/BaSui01/teamflow/types"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Streamer 可流式运行的执行层级（由 *team.Hierarchy 满足）。
type Streamer interface {
	Stream(ctx context.Context, task string) <-chan team.Step
}

// Config 调度器配置
type Config struct {
	// PaceInterval 事件间的平滑延迟（仅影响节奏，不影响正确性；0 禁用）
	PaceInterval time.Duration `yaml:"pace_interval" json:"pace_interval"`
	// NodeChunkDivisor 单节点结果的切分除数
	NodeChunkDivisor int `yaml:"node_chunk_divisor" json:"node_chunk_divisor"`
	// SummaryChunkDivisor 最终汇总的切分除数
	SummaryChunkDivisor int `yaml:"summary_chunk_divisor" json:"summary_chunk_divisor"`
	// MaxChunkTokens 每个片段的最大词数
	MaxChunkTokens int `yaml:"max_chunk_tokens" json:"max_chunk_tokens"`
}

// DefaultConfig 默认调度配置
func DefaultConfig() Config {
	return Config{
		PaceInterval:        20 * time.Millisecond,
		NodeChunkDivisor:    10,
		SummaryChunkDivisor: 20,
		MaxChunkTokens:      5,
	}
}

// Scheduler 任务调度器：驱动层级执行并发出进度事件。
// 每次 Run 完整重跑层级；事件序列有限且不可重启。
type Scheduler struct {
	hierarchy Streamer
	config    Config
	logger    *zap.Logger
}

// New 创建调度器
func New(hierarchy Streamer, config Config, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		hierarchy: hierarchy,
		config:    config,
		logger:    logger.With(zap.String("component", "scheduler")),
	}
}

// 主管分析阶段的思考步骤（流式展示，与路由无关）
var supervisorThinking = []string{
	"正在评估任务复杂度...",
	"正在规划执行策略...",
	"正在分配任务给各团队...",
}

// Run 接收一个任务并返回其事件序列。
// 通道关闭即序列结束；任何未处理失败在调度器边界被转换为单个
// error 事件，不会向消费方抛出。
func (s *Scheduler) Run(ctx context.Context, task string) <-chan types.ExecutionEvent {
	out := make(chan types.ExecutionEvent)

	go func() {
		defer close(out)
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("scheduler panic", zap.Any("panic", r))
				s.trySend(ctx, out, types.NewEvent(types.EventError, AgentSystem,
					fmt.Sprintf("任务执行出错: %v", r)))
			}
		}()

		s.drive(ctx, task, out)
	}()

	return out
}

// drive 主驱动循环
func (s *Scheduler) drive(ctx context.Context, task string, out chan<- types.ExecutionEvent) {
	limiter := rate.NewLimiter(rate.Every(s.config.PaceInterval), 1)
	emit := func(ev types.ExecutionEvent) bool {
		if err := limiter.Wait(ctx); err != nil {
			return false
		}
		return s.trySend(ctx, out, ev)
	}

	start := time.Now()
	s.logger.Info("task received", zap.Int("task_len", len(task)))

	// 1. 接收确认
	if !emit(types.NewEvent(types.EventStatus, AgentSupervisor, "任务已接收，正在分析任务需求...").WithNode("supervisor")) {
		return
	}
	for _, step := range supervisorThinking {
		if !emit(types.NewEvent(types.EventThinking, AgentSupervisor, step).WithNode("supervisor")) {
			return
		}
	}

	// 2. 流式驱动根图，按发出顺序消费 (节点, 产出) 对
	invoked := make(map[string]struct{})
	var invokedOrder []string
	var finalParts []string

	for step := range s.hierarchy.Stream(ctx, task) {
		if step.Err != nil {
			s.logger.Error("hierarchy failed", zap.Error(step.Err))
			emit(types.NewEvent(types.EventError, AgentSystem,
				fmt.Sprintf("任务执行出错: %v", step.Err)))
			return
		}

		display := DisplayName(step.Node)
		if !emit(types.NewEvent(types.EventThinking, display,
			fmt.Sprintf("【%s】正在执行任务...", display)).WithNode(step.Node)) {
			return
		}

		if _, seen := invoked[step.Node]; !seen {
			invoked[step.Node] = struct{}{}
			invokedOrder = append(invokedOrder, step.Node)
		}

		for _, msg := range step.Messages {
			if msg.IsError {
				if !emit(types.NewEvent(types.EventStatus, display, msg.Content).
					WithNode(step.Node).WithExtra("is_error", true)) {
					return
				}
				continue
			}

			for _, chunk := range Chunk(msg.Content, s.config.NodeChunkDivisor, s.config.MaxChunkTokens) {
				if !emit(types.NewEvent(types.EventResult, display, chunk).WithNode(step.Node)) {
					return
				}
			}
			finalParts = append(finalParts, fmt.Sprintf("[%s] %s", display, msg.Content))
		}

		if !emit(types.NewEvent(types.EventStatus, display,
			fmt.Sprintf("【%s】执行完成", display)).WithNode(step.Node)) {
			return
		}
	}

	if ctx.Err() != nil {
		s.logger.Info("task cancelled", zap.Duration("elapsed", time.Since(start)))
		return
	}

	// 3. 主管流式输出最终回答（按汇总除数切分）
	if len(finalParts) > 0 {
		if !emit(types.NewEvent(types.EventThinking, AgentSupervisor, "正在构建最终回答...").WithNode("supervisor")) {
			return
		}
		finalAnswer := strings.Join(finalParts, "\n\n")
		for _, chunk := range Chunk(finalAnswer, s.config.SummaryChunkDivisor, s.config.MaxChunkTokens) {
			if !emit(types.NewEvent(types.EventResult, AgentSupervisor, chunk).WithNode("supervisor")) {
				return
			}
		}
	}

	// 4. 参与节点汇总
	names := make([]string, 0, len(invokedOrder))
	for _, node := range invokedOrder {
		names = append(names, DisplayName(node))
	}
	if !emit(types.NewEvent(types.EventFinal, AgentSupervisor,
		fmt.Sprintf("任务执行完成，参与节点: %s", strings.Join(names, "、"))).WithNode("supervisor")) {
		return
	}

	// 5. 终止哨兵，携带调用节点数
	emit(types.NewEvent(types.EventEnd, AgentSystem, "任务执行完成").
		WithExtra("agents_invoked", len(invokedOrder)))

	s.logger.Info("task completed",
		zap.Int("agents_invoked", len(invokedOrder)),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func (s *Scheduler) trySend(ctx context.Context, out chan<- types.ExecutionEvent, ev types.ExecutionEvent) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
