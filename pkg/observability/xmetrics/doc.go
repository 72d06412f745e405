// Package xmetrics 提供轮转生命周期的 OpenTelemetry 指标采集。
//
// Recorder 同时适配 xroller 的三个观测挂点：作为 [xengine.Delegate]
// 统计归档与清理次数，作为 WithOnError 回调统计被吞掉的错误，作为
// WithRotationObserver 回调记录轮转耗时直方图。所有记录使用
// context.Background()，不受调用方 context 取消的影响。
//
// 指标是旁路能力：Recorder 的任何失败都不会传导回轮转路径。
package xmetrics
