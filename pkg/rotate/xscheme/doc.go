// Package xscheme 提供归档文件命名方案。
//
// 纯函数包：只做路径字符串映射，不触碰文件系统。
//
// # 命名方案
//
//   - [SchemeNumbering]: 序号方案，在扩展名前插入 ".<代数>"，
//     代数 1 表示最近一次被替换下来的文件。
//   - [SchemeTimestampUnique]: 时间戳方案，追加 ".<时间戳>_<uuid>"，
//     同一秒内的多次轮转由 uuid 保证不冲突。
//
// # 名称还原
//
// [BareName] 与 [IsArchiveOf] 不依赖当前配置的方案：对候选文件名
// 反复剥离所有可识别的轮转标记，再与目标名比较。因此即使方案在两次
// 运行之间发生变化，上一次运行留下的归档依然能被识别。
package xscheme
