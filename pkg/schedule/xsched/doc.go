// Package xsched 提供定时触发的日志轮转调度。
//
// 大小触发是轮转的主通道（xroller 在每次写入前后检查）；xsched 补充
// 时间维度：低流量的目标可能几天都写不满一个文件，按 cron 表达式
// 强制轮转保证归档边界的可预期性（如每天零点切一刀）。
//
// 基于 [robfig/cron/v3] 构建，单进程语义。轮转失败遵循与 xroller
// 一致的策略：经 WithOnError 回调上报，不中断后续调度。
//
// [robfig/cron/v3]: https://github.com/robfig/cron
package xsched
