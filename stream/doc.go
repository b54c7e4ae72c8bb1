// 版权所有 2024 Teamflow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 stream 提供按请求隔离的事件流注册表。

每个在途客户端请求对应一个独立可寻址的 FIFO 队列（Stream），
生产方（调度器后台任务）与消费方（SSE/WebSocket 传输）通过
流 ID 解耦。注册表是进程内唯一的可变共享状态：

  - Create 生成唯一流 ID 并分配空队列与取消上下文；
  - Send 向指定流入队（流不存在时为安全空操作，绝不使调用方失败）；
  - Close 入队终止 end 事件（不删除队列）；
  - Remove 取消流上下文并删除队列（幂等）。

Remove 对流上下文的取消会传播给以该上下文启动的生产者后台任务，
使客户端断开后孤儿生产者尽快停止，而不是跑完整个任务再丢弃输出。
*/
package stream
