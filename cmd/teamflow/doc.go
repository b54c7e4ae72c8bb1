// 版权所有 2024 Teamflow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
Teamflow 服务入口。

构建并运行层级多智能体任务编排服务：
主管/工作节点团队图、任务调度、SSE/WebSocket 流式推送、
健康检查与 Prometheus 指标。
*/
package main
