// Package xfile 提供日志文件路径的格式校验与准备工具。
//
// 职责边界：
//   - SanitizePath: 路径格式净化（空路径、空字节、相对路径穿越、目录路径）
//   - EnsureDir / EnsureDirWithPerm: 确保文件的父目录存在
//   - ParsePerm: 解析配置面的八进制权限字符串
//
// 本包只做路径构建与格式校验，不提供沙箱隔离或原子化安全文件访问；
// 对抗性场景应结合操作系统级别的目录权限控制。
package xfile
