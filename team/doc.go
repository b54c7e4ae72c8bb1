// 版权所有 2024 Teamflow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 team 提供监督者/工作者模式的团队执行图。

# 概述

一个团队图（Graph）由一个监督者（Supervisor）和一组成员（Member）组成，
形成"决策 → 执行 → 回到决策"的循环，直到监督者选择 FINISH 终止。

# 核心模型

  - Decider：决策函数接口（外部协作者，通常由 LLM 实现）。
  - Supervisor：绑定固定成员集合的决策节点，带确定性回退策略。
  - Member：标签变体类型，Worker（能力单元）或 SubTeam（嵌套子图）。
  - Graph：状态机执行循环，带步数上限防止无限往返。
  - Hierarchy：最多三层的团队树，根图作为唯一可调用入口。

# 不变量

每次成员执行后控制权必然回到监督者，成员之间从不直接调用；
所有调度决策集中在监督者一处。嵌套子团队对父图表现为单个成员，
其内部图运行到终止后，结果以子团队名折叠回父历史。
*/
package team
