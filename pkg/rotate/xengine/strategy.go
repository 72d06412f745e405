package xengine

import (
	"fmt"
	"os"

	"github.com/omeyang/rollkit/pkg/rotate/xscheme"
)

// archiveInPlace 原地归档策略。
//
// 固定顺序执行三步，每一步独立容错：某一步失败（上报后）不阻止
// 后续步骤继续尝试。当前路径全程保持为目标路径，新文件由随后的
// Reopen 重新创建。
func (e *Engine) archiveInPlace() {
	if e.cfg.Scheme == xscheme.SchemeNumbering {
		e.shiftArchives()
	}
	e.archiveTarget()
	e.enforceRetention()
}

// shiftArchives 平移既有归档，为代数 1 腾出位置。
//
// 按修改时间升序扫描 n 个历史代文件，扫描序号 i（0 起）的文件改名
// 为代数 n+1-i：最旧的推到最大代数，最新的改为代数 2。升序处理
// 保证高代数名字先被腾出，平移本身不会互相冲突。
//
// 目标代数名已被占用时跳过该次平移（上报）而不覆盖——这可能留下
// 一个代数重复的陈旧文件，是已知缺口，不做静默修复。
func (e *Engine) shiftArchives() {
	sibs, err := e.siblings()
	if err != nil {
		e.reportError(fmt.Errorf("xengine: shift scan failed: %w", err))
		return
	}

	n := len(sibs)
	for i, src := range sibs {
		dst, err := xscheme.ArchiveName(e.target, n+1-i)
		if err != nil {
			e.reportError(err)
			continue
		}
		if dst == src {
			continue
		}
		if _, err := os.Stat(dst); err == nil {
			e.reportError(fmt.Errorf("xengine: shift skipped, destination exists: %s", dst))
			continue
		}
		if err := os.Rename(src, dst); err != nil {
			e.reportError(fmt.Errorf("xengine: shift %s -> %s failed: %w", src, dst, err))
		}
	}
}

// archiveTarget 把目标文件本身移动为最新的归档。
//
// 移动失败只上报不中断：保留清理仍会执行，因为上一次的部分失败
// 可能已经让归档集合超出预算。
func (e *Engine) archiveTarget() {
	var dst string
	if e.cfg.Scheme == xscheme.SchemeTimestampUnique {
		dst = xscheme.StampedArchiveName(e.target, e.now(), e.newID())
	} else {
		// 代数 1 已由 shiftArchives 腾出
		dst, _ = xscheme.ArchiveName(e.target, 1)
	}

	if err := os.Rename(e.target, dst); err != nil {
		e.reportError(fmt.Errorf("xengine: archive %s -> %s failed: %w", e.target, dst, err))
		return
	}
	if e.delegate != nil {
		e.delegate.Archived(e.target, dst)
	}
}

// enforceRetention 重新扫描归档集合，删除超出保留数量的最旧条目。
func (e *Engine) enforceRetention() {
	sibs, err := e.siblings()
	if err != nil {
		e.reportError(fmt.Errorf("xengine: retention scan failed: %w", err))
		return
	}

	excess := len(sibs) - e.cfg.MaxArchived
	for i := 0; i < excess; i++ {
		if err := os.Remove(sibs[i]); err != nil {
			e.reportError(fmt.Errorf("xengine: retention remove %s failed: %w", sibs[i], err))
			continue
		}
		if e.delegate != nil {
			e.delegate.ArchiveRemoved(sibs[i])
		}
	}
}

// createNewFile 新建文件策略：只推进当前路径，不移动、不清理。
//
// 与原地归档刻意不对称：历史文件无限累积，清理交给操作员。
// 序号方案固定铸造代数 1 的名字，连续轮转会反复覆盖它（参考实现
// 的既有行为，按原样保留）；时间戳方案每次都是全新名字，无覆盖
// 风险。
func (e *Engine) createNewFile() {
	if e.cfg.Scheme == xscheme.SchemeTimestampUnique {
		e.current = xscheme.StampedCurrentName(e.target, e.now(), e.newID())
	} else {
		e.current = xscheme.NumberedCurrentName(e.target)
	}
}
