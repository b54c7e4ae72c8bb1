package scheduler

import "strings"

// Planner 生成任务的人类可读执行计划预览。
// 仅用于展示：实际路由由各团队的监督者决定，预览不参与调度。
type Planner interface {
	Plan(task string) []string
}

// KeywordPlanner 基于关键词的启发式计划器（可替换实现）。
type KeywordPlanner struct{}

// NewKeywordPlanner 创建关键词计划器
func NewKeywordPlanner() *KeywordPlanner {
	return &KeywordPlanner{}
}

// Plan 根据任务文本中的关键词推测将参与的团队。
func (KeywordPlanner) Plan(task string) []string {
	lower := strings.ToLower(task)
	plan := []string{"主管分析任务并分派团队"}

	if containsAny(lower, "research", "search", "find", "研究", "搜索", "查找") {
		plan = append(plan, "研究团队执行搜索与信息提取")
	}
	if containsAny(lower, "write", "report", "document", "写", "报告", "文档") {
		plan = append(plan, "文档写作团队撰写并整理结果")
	}
	if containsAny(lower, "chart", "graph", "visualiz", "图表", "可视化") {
		plan = append(plan, "图表生成器绘制数据可视化")
	}
	if len(plan) == 1 {
		plan = append(plan, "研究团队与文档写作团队协同处理")
	}

	plan = append(plan, "主管汇总各团队结果并输出最终回答")
	return plan
}

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
