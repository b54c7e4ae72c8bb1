// Package teamflow provides a top-level convenience entry point for running
// hierarchical agent-team tasks with minimal boilerplate.
//
// Usage:
//
//	import "github.com/BaSui01/teamflow"
//
//	o, err := teamflow.New()
//	o, err := teamflow.New(teamflow.WithStepLimit(10), teamflow.WithLogger(logger))
//
//	for ev := range o.Run(ctx, "研究量子计算并撰写报告") {
//	    fmt.Println(ev.Type, ev.Message)
//	}
//
// This wires the default three-level team hierarchy into a scheduler; use the
// team and scheduler packages directly when you need a custom topology.
package teamflow

import (
	"context"

	"github.com/BaSui01/teamflow/scheduler"
	"github.com/BaSui01/teamflow/team"
	"github.com/BaSui01/teamflow/types"
	"github.com/BaSui01/teamflow/workers"
	"go.uber.org/zap"
)

// Orchestrator 组合层级团队与调度器的顶层入口。
type Orchestrator struct {
	hierarchy *team.Hierarchy
	sched     *scheduler.Scheduler
}

type options struct {
	logger    *zap.Logger
	stepLimit int
	schedCfg  scheduler.Config
	hierarchy *team.Hierarchy
	factory   workers.DeciderFactory
}

// Option configures the orchestrator created by [New].
type Option func(*options)

// WithLogger sets a custom zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithStepLimit sets the per-team supervisor decision limit.
func WithStepLimit(limit int) Option {
	return func(o *options) { o.stepLimit = limit }
}

// WithSchedulerConfig overrides the scheduler configuration.
func WithSchedulerConfig(cfg scheduler.Config) Option {
	return func(o *options) { o.schedCfg = cfg }
}

// WithHierarchy uses a pre-built hierarchy instead of the default team tree.
func WithHierarchy(h *team.Hierarchy) Option {
	return func(o *options) { o.hierarchy = h }
}

// WithDeciderFactory sets the decider factory for the default team tree.
func WithDeciderFactory(f workers.DeciderFactory) Option {
	return func(o *options) { o.factory = f }
}

// New creates an [Orchestrator] over the default three-level team hierarchy.
func New(opts ...Option) (*Orchestrator, error) {
	o := options{
		logger:    zap.NewNop(),
		stepLimit: 25,
		schedCfg:  scheduler.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	hierarchy := o.hierarchy
	if hierarchy == nil {
		var err error
		hierarchy, err = workers.BuildDefaultHierarchy(o.factory, o.stepLimit, o.logger)
		if err != nil {
			return nil, err
		}
	}

	return &Orchestrator{
		hierarchy: hierarchy,
		sched:     scheduler.New(hierarchy, o.schedCfg, o.logger),
	}, nil
}

// Run 运行一个任务并返回其事件序列。通道关闭即序列结束。
func (o *Orchestrator) Run(ctx context.Context, task string) <-chan types.ExecutionEvent {
	return o.sched.Run(ctx, task)
}

// Hierarchy 返回底层团队层级。
func (o *Orchestrator) Hierarchy() *team.Hierarchy {
	return o.hierarchy
}
