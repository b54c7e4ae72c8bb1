package scheduler

// 系统级显示名
const (
	AgentSupervisor = "主管"
	AgentSystem     = "系统"
)

// displayNames 节点标识到客户端显示名的映射
var displayNames = map[string]string{
	"supervisor":            AgentSupervisor,
	"searcher":              "搜索器",
	"web_crawler":           "网页爬虫",
	"writer":                "写作者",
	"notebook":              "记事本",
	"chart_generator":       "图表生成器",
	"research_team":         "研究团队",
	"document_writing_team": "文档写作团队",
	"search_team":           "搜索团队",
	"writing_team":          "写作团队",
}

// DisplayName 返回节点的显示名，未知节点原样返回。
func DisplayName(node string) string {
	if name, ok := displayNames[node]; ok {
		return name
	}
	return node
}
