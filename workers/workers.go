package workers

import (
	"context"
	"fmt"

	"github.com/BaSui01/teamflow/types"
)

// 内置工作节点名
const (
	NodeSearcher   = "searcher"
	NodeCrawler    = "web_crawler"
	NodeWriter     = "writer"
	NodeNotebook   = "notebook"
	NodeChart      = "chart_generator"
	NodeSupervisor = "supervisor"
)

// 团队节点名
const (
	TeamSearch   = "search_team"
	TeamWriting  = "writing_team"
	TeamResearch = "research_team"
	TeamDocument = "document_writing_team"
)

// SearchWorker 网络搜索桩
type SearchWorker struct{}

func (SearchWorker) Invoke(_ context.Context, instruction string, _ []types.Message) ([]types.Message, error) {
	return []types.Message{{Content: fmt.Sprintf("WebSearch result for: %s", instruction)}}, nil
}

// CrawlerWorker 网页爬取桩
type CrawlerWorker struct{}

func (CrawlerWorker) Invoke(_ context.Context, instruction string, _ []types.Message) ([]types.Message, error) {
	return []types.Message{{Content: fmt.Sprintf("WebCrawler result for: %s", instruction)}}, nil
}

// WriterWorker 文档写作桩（读、写、提纲）
type WriterWorker struct{}

func (WriterWorker) Invoke(_ context.Context, instruction string, _ []types.Message) ([]types.Message, error) {
	return []types.Message{{Content: fmt.Sprintf("Document written for: %s", instruction)}}, nil
}

// NotebookWorker 笔记创建桩
type NotebookWorker struct{}

func (NotebookWorker) Invoke(_ context.Context, instruction string, _ []types.Message) ([]types.Message, error) {
	return []types.Message{{Content: fmt.Sprintf("Notebook created for: %s", instruction)}}, nil
}

// ChartWorker 图表生成桩
type ChartWorker struct{}

func (ChartWorker) Invoke(_ context.Context, instruction string, _ []types.Message) ([]types.Message, error) {
	return []types.Message{{Content: fmt.Sprintf("Chart generated for: %s", instruction)}}, nil
}
