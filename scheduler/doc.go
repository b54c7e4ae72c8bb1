// 版权所有 2024 Teamflow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 scheduler 提供任务调度器：接收单个任务，驱动团队层级运行到
终止，并把执行进度转换为有序的 ExecutionEvent 序列。

# 事件序列

	status(接收确认) → thinking(主管分析) →
	每个节点: thinking → result 片段… → status(完成) →
	final(参与节点汇总) → end(含调用节点数)

调度器边界内的任何未处理失败被转换为单个 error 事件后序列结束，
不会向传输层重新抛出；客户端必然收到 end 或 error 之一。

# 片段切分

结果文本按空白切词，片段大小 = clamp(词数/除数, 1, 上限)。
按发出顺序以单个空格重连所有片段可还原原文。
*/
package scheduler
