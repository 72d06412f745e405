package xengine

// Writer 引擎消费的写入器能力。
//
// 实现方独占持有打开的文件句柄。Reopen 必须先关闭已有句柄再打开
// 新路径（不存在时连同父目录一起创建，并应用配置的权限），保证
// 句柄不会指向一个刚被移走或删除的文件。
type Writer interface {
	// Reopen 关闭当前句柄并切换到指定路径。
	Reopen(path string) error
}

// Delegate 轮转生命周期通知的接收方。
//
// 通知是尽力而为的旁路信息，从不影响轮转的正确性；实现方法必须
// 快速返回，不得反向写入同一个日志目标。
type Delegate interface {
	// Archived 在一次成功的归档移动后触发。
	Archived(fromPath, toPath string)

	// ArchiveRemoved 在一次成功的保留清理删除后触发。
	ArchiveRemoved(path string)
}

// DelegateFuncs 以函数字段实现 [Delegate] 的适配器，nil 字段表示
// 忽略对应通知。
type DelegateFuncs struct {
	OnArchived       func(fromPath, toPath string)
	OnArchiveRemoved func(path string)
}

// Archived 实现 [Delegate] 接口。
func (d DelegateFuncs) Archived(fromPath, toPath string) {
	if d.OnArchived != nil {
		d.OnArchived(fromPath, toPath)
	}
}

// ArchiveRemoved 实现 [Delegate] 接口。
func (d DelegateFuncs) ArchiveRemoved(path string) {
	if d.OnArchiveRemoved != nil {
		d.OnArchiveRemoved(path)
	}
}
