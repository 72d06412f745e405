// Package xlumber 提供基于 lumberjack 的日志轮转写入器。
//
// 与 xroller 的分工：xroller 是本仓库自己的轮转引擎（两种命名方案、
// 两种创建策略、可观测的轮转生命周期）；xlumber 把成熟的 lumberjack
// 库适配到同一个 [xroller.Rotator] 接口上，换取 xroller 刻意不做的
// 能力——按天数清理和 gzip 压缩归档。两者可以在同一个进程里互换，
// 选型只影响构造函数。
package xlumber
