// Package xscan 提供轮转决策所需的文件系统探测能力。
//
//   - [Size]: 按需读取文件当前字节数，不缓存。
//   - [Siblings]: 枚举目标文件所在目录中的历史代文件，
//     按修改时间升序（最旧在前）返回。
//
// 目录扫描是归档集合的唯一事实来源：不维护任何持久化索引，
// 外部对归档文件的增删会在下一次扫描时自然生效。
package xscan
