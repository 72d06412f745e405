// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xmetrics: 轮转生命周期指标，基于 OpenTelemetry
//
// 设计原则：
//   - 遵循 OpenTelemetry 语义规范
//   - 指标采集是旁路能力，绝不影响轮转与写入的正确性
package observability
