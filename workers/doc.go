// 版权所有 2024 Teamflow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 workers 提供内置的工作者能力桩与默认团队层级装配。

工作者对核心是不透明的执行单元：接受文本指令与消息历史，
产出文本结果或失败。本包的实现是确定性桩（搜索、爬虫、写作、
记事本、图表），用于搭建与演示完整的三层团队结构；
生产部署可用真实能力替换任意成员。
*/
package workers
