// 版权所有 2024 Teamflow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
Package server 提供 HTTP 服务器的生命周期管理：
非阻塞启动、优雅关闭、异步错误上报。信号等待由调用方实现，
因为一次停机往往要同时收束多个监听端口。

业务与指标两个监听端口各使用一个独立的 Manager 实例。
*/
package server
