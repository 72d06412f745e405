// Package schedule 提供定时任务相关的子包。
//
// 子包列表：
//   - xsched: 基于 cron 表达式的定时轮转调度器
package schedule
