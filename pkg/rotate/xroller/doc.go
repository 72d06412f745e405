// Package xroller 提供按大小轮转的日志写入器。
//
// Roller 实现 [io.WriteCloser]，可直接用作任何日志库的输出目标。
// 每次写入前后各做一次轮转检查：前置检查处理外部增长（如进程重启
// 后遗留的超限文件），后置检查保证单次大写入后下一条消息落到新
// 文件。轮转判定与文件集合处置由 xengine 承担，本包只负责句柄
// 生命周期和执行模型。
//
// 执行模型：所有操作（写入、轮转、关闭）提交到单消费者队列串行
// 执行，轮转期间绝不会有并发写入落到正被移动的文件上。Write 是
// 并发安全的，但调用方之间的相对顺序由队列的到达顺序决定。
//
// 错误策略分两段：构造期错误（路径非法、配置非法、首次建目录或
// 开文件失败）直接返回给调用方；稳态轮转中的错误被吞掉并通过
// WithOnError 回调上报，日志子系统的故障从不拖垮宿主进程。重开
// 失败后进入降级模式：后续 Write 返回 [ErrNoFile]，直到下一次
// 成功的轮转恢复句柄。
package xroller
