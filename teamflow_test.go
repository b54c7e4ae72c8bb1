package teamflow

import (
	"context"
	"testing"
	"time"

	"github.com/BaSui01/teamflow/scheduler"
	"github.com/BaSui01/teamflow/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() scheduler.Config {
	cfg := scheduler.DefaultConfig()
	cfg.PaceInterval = 0
	return cfg
}

func TestNew_Defaults(t *testing.T) {
	o, err := New()
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, 3, o.Hierarchy().Depth())
}

func TestOrchestrator_RunEndToEnd(t *testing.T) {
	o, err := New(WithSchedulerConfig(fastConfig()))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var events []types.ExecutionEvent
	for ev := range o.Run(ctx, "研究量子计算并撰写报告") {
		events = append(events, ev)
	}
	require.NotEmpty(t, events)

	assert.Equal(t, types.EventStatus, events[0].Type)
	assert.Equal(t, types.EventEnd, events[len(events)-1].Type)

	// 每种终态前的事件都夹带节点产出
	var sawResult, sawFinal bool
	for _, ev := range events {
		switch ev.Type {
		case types.EventResult:
			sawResult = true
		case types.EventFinal:
			sawFinal = true
		}
	}
	assert.True(t, sawResult)
	assert.True(t, sawFinal)
}

func TestOrchestrator_RunCancelled(t *testing.T) {
	o, err := New(WithSchedulerConfig(fastConfig()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var count int
	for range o.Run(ctx, "some task") {
		count++
	}
	// 取消后序列立即收束，不产出终止哨兵
	assert.Less(t, count, 3)
}

func TestWithStepLimit_Propagates(t *testing.T) {
	o, err := New(WithStepLimit(1), WithSchedulerConfig(fastConfig()))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var last types.ExecutionEvent
	for ev := range o.Run(ctx, "research and write") {
		last = ev
	}
	// 步数上限 1 不足以让任何团队走到 FINISH，序列以错误收场
	assert.Equal(t, types.EventError, last.Type)
}
