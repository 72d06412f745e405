package xscan

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/omeyang/rollkit/pkg/rotate/xscheme"
)

// Size 返回文件当前的字节数。
//
// 每次调用都执行 Stat，不做任何缓存：轮转决策必须反映调用时刻的
// 真实大小。文件不存在或不可访问时返回错误，由调用方决定语义
// （轮转引擎将其视为"不轮转"）。
func Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// sibling 扫描过程中收集的候选文件。
type sibling struct {
	path    string
	modTime time.Time
}

// Siblings 枚举目标文件的历史代文件，按修改时间升序返回完整路径。
//
// 过滤规则：与目标不同名，且剥离全部轮转标记后的裸名称等于目标
// 文件名（见 [xscheme.IsArchiveOf]）。识别不依赖当前配置的方案，
// 上一次运行在不同方案下留下的归档同样会被找到。
//
// 修改时间相同时以路径字典序为次要排序键，保证对固定的文件系统
// 状态产出确定的顺序。
//
// 目录不可读时返回错误与空序列；扫描过程中个别条目 Stat 失败
// （例如刚好被外部删除）则跳过该条目继续。
func Siblings(target string) ([]string, error) {
	dir := filepath.Dir(target)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var found []sibling
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !xscheme.IsArchiveOf(target, path) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// 条目在 ReadDir 与 Stat 之间被外部移除，容忍并跳过
			continue
		}
		found = append(found, sibling{path: path, modTime: info.ModTime()})
	}

	sort.Slice(found, func(i, j int) bool {
		if !found[i].modTime.Equal(found[j].modTime) {
			return found[i].modTime.Before(found[j].modTime)
		}
		return found[i].path < found[j].path
	})

	paths := make([]string, len(found))
	for i, s := range found {
		paths[i] = s.path
	}
	return paths, nil
}
