// 版权所有 2024 Teamflow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 types 提供 teamflow 框架的核心数据类型。

# 概述

本包定义任务执行过程中流转的三类核心数据：

  - Message：一次任务内按顺序累积的对话/结果历史，所有节点共享。
  - ExecutionEvent：可观测的执行进度单元（thinking/status/result/final/error/end）。
  - Error：带错误码的结构化错误。

# 设计约束

本包对其他 teamflow 包零依赖，避免循环引用。
其他包统一从这里引用核心类型。
*/
package types
