// Package xengine 实现按大小触发的日志轮转决策与文件生命周期引擎。
//
// 引擎只负责"决定是否轮转、执行归档/改名/清理、指示写入器重开文件"，
// 不拥有文件句柄：句柄由 [Writer] 的实现（见 xroller 包）独占持有，
// 引擎通过显式的 Reopen(path) 调用切换当前文件。
//
// # 两种创建策略
//
//   - [StrategyArchiveInPlace]: 始终写同一个目标路径，轮转时把文件
//     移走（序号方案先平移既有归档），再按保留数量删除最旧归档。
//   - [StrategyCreateNewFile]: 轮转时铸造一个新的当前文件路径，
//     不做归档移动，也不执行保留清理——历史文件会无限累积，
//     需要操作员自行清理，这是已知的运维注意事项而非缺陷。
//
// 已知行为：新建文件策略 + 序号方案每次轮转都指向代数 1 的同一个
// 名字，反复覆盖。该行为与参考实现一致，按原样保留。
//
// # 错误处理
//
// 构造期错误（目标是目录、配置非法）直接返回，引擎不会半初始化。
// 稳态轮转中的每一步（平移、归档、清理、重开）各自容错：失败通过
// OnError 回调上报后继续执行后续步骤，绝不让轮转失败阻塞写入路径。
//
// 设计决策: 内部错误不走日志库而走回调，轮转器本身就是日志输出
// 目标，使用日志库会产生递归写入。
package xengine
