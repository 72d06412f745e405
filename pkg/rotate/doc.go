// Package rotate 提供按大小触发的日志文件轮转相关的子包。
//
// 子包列表：
//   - xscheme: 归档命名方案，序号与时间戳两种后缀的生成和剥离
//   - xscan: 文件大小探测与归档兄弟文件扫描（修改时间升序）
//   - xengine: 轮转引擎，策略执行、保留清理、委托通知
//   - xroller: 面向调用方的 io.WriteCloser，串行队列 + 写前写后检查
//   - xlumber: lumberjack 适配器，按天龄清理和压缩的替代实现
//
// 分层关系：xroller 持有唯一文件句柄并驱动 xengine；xengine 组合
// xscheme 和 xscan 完成一次轮转。需要基于时间维度的定期轮转时配合
// schedule/xsched 使用。
package rotate
