// Package xconf 提供轮转配置的加载、校验与热更新。
//
// 加载基于 koanf（YAML/JSON 两种格式），热更新基于 fsnotify 监视
// 配置文件所在目录并防抖重载。RotationConfig 是配置文件到
// xroller 选项的桥：字符串形式的方案、策略和八进制权限在这里
// 完成解析与校验，非法值（如权限 "999"）在加载期失败而不是在
// 第一次轮转时才暴露。
package xconf
