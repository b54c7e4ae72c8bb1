package workers

import (
	"fmt"

	"github.com/BaSui01/teamflow/team"
	"go.uber.org/zap"
)

// DeciderFactory 为每个团队图创建决策函数。
// teamName 是图名，members 是该图的候选成员名。
type DeciderFactory func(teamName string, members []string) team.Decider

// RuleDeciderFactory 为所有团队使用同一个规则决策器。
func RuleDeciderFactory() DeciderFactory {
	return func(string, []string) team.Decider {
		return NewRuleDecider()
	}
}

// BuildDefaultHierarchy 装配默认三层团队树：
//
//	supervisor (L1)
//	├── research_team (L2)
//	│   └── search_team (L3): searcher, web_crawler
//	└── document_writing_team (L2)
//	    └── writing_team (L3): writer, notebook, chart_generator
//
// 自底向上构建：叶子图先包装为子团队成员再挂到上层。
func BuildDefaultHierarchy(factory DeciderFactory, stepLimit int, logger *zap.Logger) (*team.Hierarchy, error) {
	if factory == nil {
		factory = RuleDeciderFactory()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	// 第三层：搜索团队
	searchGraph, err := team.NewGraph(TeamSearch,
		factory(TeamSearch, []string{NodeSearcher, NodeCrawler}),
		stepLimit, logger,
		team.WorkerMember(NodeSearcher, SearchWorker{}),
		team.WorkerMember(NodeCrawler, CrawlerWorker{}),
	)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", TeamSearch, err)
	}

	// 第三层：写作团队
	writingGraph, err := team.NewGraph(TeamWriting,
		factory(TeamWriting, []string{NodeWriter, NodeNotebook, NodeChart}),
		stepLimit, logger,
		team.WorkerMember(NodeWriter, WriterWorker{}),
		team.WorkerMember(NodeNotebook, NotebookWorker{}),
		team.WorkerMember(NodeChart, ChartWorker{}),
	)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", TeamWriting, err)
	}

	// 第二层：研究团队（包裹搜索团队）
	researchGraph, err := team.NewGraph(TeamResearch,
		factory(TeamResearch, []string{TeamSearch}),
		stepLimit, logger,
		team.SubTeamMember(TeamSearch, searchGraph),
	)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", TeamResearch, err)
	}

	// 第二层：文档写作团队（包裹写作团队）
	documentGraph, err := team.NewGraph(TeamDocument,
		factory(TeamDocument, []string{TeamWriting}),
		stepLimit, logger,
		team.SubTeamMember(TeamWriting, writingGraph),
	)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", TeamDocument, err)
	}

	// 第一层：顶层主管
	rootGraph, err := team.NewGraph(NodeSupervisor,
		factory(NodeSupervisor, []string{TeamResearch, TeamDocument}),
		stepLimit, logger,
		team.SubTeamMember(TeamResearch, researchGraph),
		team.SubTeamMember(TeamDocument, documentGraph),
	)
	if err != nil {
		return nil, fmt.Errorf("build root graph: %w", err)
	}

	return team.NewHierarchy(rootGraph)
}
