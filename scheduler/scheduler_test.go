package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/BaSui01/teamflow/team"
	"github.com/BaSui01/teamflow/types"
	"github.com/BaSui01/teamflow/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testConfig disables pacing so tests run immediately.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.PaceInterval = 0
	return cfg
}

// stepStreamer replays a fixed step sequence.
type stepStreamer struct {
	steps []team.Step
}

func (s *stepStreamer) Stream(ctx context.Context, _ string) <-chan team.Step {
	out := make(chan team.Step)
	go func() {
		defer close(out)
		for _, step := range s.steps {
			select {
			case out <- step:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func collect(t *testing.T, ch <-chan types.ExecutionEvent) []types.ExecutionEvent {
	t.Helper()
	var events []types.ExecutionEvent
	for ev := range ch {
		events = append(events, ev)
	}
	return events
}

// 示例场景：顶层主管 + 两个团队，事件种类按规定顺序出现
func TestScheduler_Run_ExampleScenario(t *testing.T) {
	h, err := workers.BuildDefaultHierarchy(nil, 25, zap.NewNop())
	require.NoError(t, err)

	s := New(h, testConfig(), zap.NewNop())
	events := collect(t, s.Run(context.Background(), "Research AI agents and write a brief report about them."))
	require.NotEmpty(t, events)

	// 首事件为接收确认，末事件为 end
	assert.Equal(t, types.EventStatus, events[0].Type)
	last := events[len(events)-1]
	assert.Equal(t, types.EventEnd, last.Type)
	assert.Equal(t, 2, last.Extra["agents_invoked"])

	// 种类序列：status → thinking… → (thinking/result…/status)+ → final → end
	kinds := make([]types.EventType, 0, len(events))
	for _, ev := range events {
		kinds = append(kinds, ev.Type)
	}
	assert.Equal(t, types.EventThinking, kinds[1])

	finalIdx := -1
	for i, k := range kinds {
		if k == types.EventFinal {
			finalIdx = i
		}
	}
	require.GreaterOrEqual(t, finalIdx, 0, "expected a final summary event")
	assert.Equal(t, types.EventEnd, kinds[finalIdx+1], "end follows final")

	// final 汇总点名两个团队
	assert.Contains(t, events[finalIdx].Message, "研究团队")
	assert.Contains(t, events[finalIdx].Message, "文档写作团队")

	// 两个团队各有 thinking / result / status
	for _, node := range []string{workers.TeamResearch, workers.TeamDocument} {
		var sawThinking, sawResult, sawStatus bool
		for _, ev := range events {
			if ev.Node != node {
				continue
			}
			switch ev.Type {
			case types.EventThinking:
				sawThinking = true
			case types.EventResult:
				sawResult = true
			case types.EventStatus:
				sawStatus = true
			}
		}
		assert.True(t, sawThinking, "thinking for %s", node)
		assert.True(t, sawResult, "result for %s", node)
		assert.True(t, sawStatus, "status for %s", node)
	}

	// 终止事件唯一
	endCount := 0
	for _, k := range kinds {
		if k == types.EventEnd {
			endCount++
		}
	}
	assert.Equal(t, 1, endCount)
}

// 顺序保持：单节点 result 片段重连后还原原文
func TestScheduler_Run_OrderPreservation(t *testing.T) {
	original := "The quick brown fox jumps over the lazy dog again and again until done"
	streamer := &stepStreamer{steps: []team.Step{
		{Node: "research_team", Messages: []types.Message{types.NewNodeMessage("research_team", original)}},
	}}

	s := New(streamer, testConfig(), zap.NewNop())
	events := collect(t, s.Run(context.Background(), "task"))

	var fragments []string
	for _, ev := range events {
		if ev.Type == types.EventResult && ev.Node == "research_team" {
			fragments = append(fragments, ev.Message)
		}
	}
	require.NotEmpty(t, fragments)
	assert.Greater(t, len(fragments), 1, "long result should be split into multiple fragments")
	assert.Equal(t, original, strings.Join(fragments, " "))
}

// 终止性：层级致命失败产生恰好一个 error 事件，无 end
func TestScheduler_Run_FatalErrorSingleErrorEvent(t *testing.T) {
	streamer := &stepStreamer{steps: []team.Step{
		{Err: types.NewError(types.ErrStepLimitExceeded, "team supervisor exceeded 5 supervisor decisions")},
	}}

	s := New(streamer, testConfig(), zap.NewNop())
	events := collect(t, s.Run(context.Background(), "task"))
	require.NotEmpty(t, events)

	var errCount, endCount int
	for _, ev := range events {
		switch ev.Type {
		case types.EventError:
			errCount++
		case types.EventEnd:
			endCount++
		}
	}
	assert.Equal(t, 1, errCount)
	assert.Zero(t, endCount)
	assert.Equal(t, types.EventError, events[len(events)-1].Type)
}

// 工作者级错误以 status 事件呈现，任务仍以 end 终止
func TestScheduler_Run_WorkerErrorNonFatal(t *testing.T) {
	streamer := &stepStreamer{steps: []team.Step{
		{Node: "searcher", Messages: []types.Message{types.NewErrorMessage("searcher", "节点执行失败: timeout")}},
	}}

	s := New(streamer, testConfig(), zap.NewNop())
	events := collect(t, s.Run(context.Background(), "task"))
	require.NotEmpty(t, events)

	assert.Equal(t, types.EventEnd, events[len(events)-1].Type)
	var sawErrorStatus bool
	for _, ev := range events {
		if ev.Type == types.EventStatus && ev.Node == "searcher" && ev.Extra["is_error"] == true {
			sawErrorStatus = true
		}
		assert.NotEqual(t, types.EventError, ev.Type)
	}
	assert.True(t, sawErrorStatus)
}

// 取消后调度器尽快停止，不再发事件
func TestScheduler_Run_CancelStopsProducer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h, err := workers.BuildDefaultHierarchy(nil, 25, zap.NewNop())
	require.NoError(t, err)

	s := New(h, testConfig(), zap.NewNop())
	events := collect(t, s.Run(ctx, "task"))
	assert.Empty(t, events)
}

func TestKeywordPlanner(t *testing.T) {
	p := NewKeywordPlanner()

	plan := p.Plan("Research AI agents and write a brief report about them.")
	require.NotEmpty(t, plan)
	joined := strings.Join(plan, "\n")
	assert.Contains(t, joined, "研究团队")
	assert.Contains(t, joined, "文档写作团队")

	// 无关键词时给出默认协同计划
	fallback := p.Plan("你好")
	assert.NotEmpty(t, fallback)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "研究团队", DisplayName("research_team"))
	assert.Equal(t, "unknown_node", DisplayName("unknown_node"))
}

// panic 在调度器边界被转换为 error 事件
func TestScheduler_Run_RecoversPanic(t *testing.T) {
	s := New(panicStreamer{}, testConfig(), zap.NewNop())
	events := collect(t, s.Run(context.Background(), "task"))
	require.NotEmpty(t, events)
	assert.Equal(t, types.EventError, events[len(events)-1].Type)
}

type panicStreamer struct{}

func (panicStreamer) Stream(context.Context, string) <-chan team.Step {
	panic(errors.New("boom"))
}
