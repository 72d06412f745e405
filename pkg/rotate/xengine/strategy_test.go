package xengine

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/rollkit/pkg/rotate/xscheme"
)

// recorder 记录通知的测试用 Delegate。
type recorder struct {
	archived [][2]string
	removed  []string
}

func (r *recorder) Archived(from, to string) {
	r.archived = append(r.archived, [2]string{from, to})
}

func (r *recorder) ArchiveRemoved(path string) {
	r.removed = append(r.removed, path)
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, ent := range entries {
		names = append(names, ent.Name())
	}
	sort.Strings(names)
	return names
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// =============================================================================
// 原地归档 + 序号方案
// =============================================================================

func TestArchiveInPlaceFirstRotation(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "app.log")
	rec := &recorder{}
	w := &fakeWriter{create: true}

	e, err := New(target, w, archiveConfig(100, 3), WithDelegate(rec))
	require.NoError(t, err)

	writeSized(t, target, 101)
	require.NoError(t, e.Rotate())

	// 目标被移动为代数 1，Reopen 重新创建了空目标
	assert.Equal(t, []string{"app.1.log", "app.log"}, listDir(t, tmpDir))
	assert.Equal(t, []string{target}, w.reopened)

	require.Len(t, rec.archived, 1)
	assert.Equal(t, target, rec.archived[0][0])
	assert.Equal(t, filepath.Join(tmpDir, "app.1.log"), rec.archived[0][1])
	assert.Empty(t, rec.removed)
}

func TestArchiveInPlaceShift(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "app.log")

	// 修改时间升序 = 代数降序：.3 最旧，.1 最新
	base := time.Now().Add(-time.Hour)
	touchAt(t, filepath.Join(tmpDir, "app.3.log"), "gen3", base)
	touchAt(t, filepath.Join(tmpDir, "app.2.log"), "gen2", base.Add(time.Minute))
	touchAt(t, filepath.Join(tmpDir, "app.1.log"), "gen1", base.Add(2*time.Minute))
	touchAt(t, target, "live", base.Add(3*time.Minute))

	e, err := New(target, &fakeWriter{create: true}, archiveConfig(100, 10))
	require.NoError(t, err)
	require.NoError(t, e.Rotate())

	// 每个历史代整体后移一位，目标落到代数 1
	assert.Equal(t,
		[]string{"app.1.log", "app.2.log", "app.3.log", "app.4.log", "app.log"},
		listDir(t, tmpDir))
	assert.Equal(t, "live", readFile(t, filepath.Join(tmpDir, "app.1.log")))
	assert.Equal(t, "gen1", readFile(t, filepath.Join(tmpDir, "app.2.log")))
	assert.Equal(t, "gen2", readFile(t, filepath.Join(tmpDir, "app.3.log")))
	assert.Equal(t, "gen3", readFile(t, filepath.Join(tmpDir, "app.4.log")))
}

func TestArchiveInPlaceRetention(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "app.log")
	rec := &recorder{}

	base := time.Now().Add(-time.Hour)
	touchAt(t, filepath.Join(tmpDir, "app.2.log"), "gen2", base)
	touchAt(t, filepath.Join(tmpDir, "app.1.log"), "gen1", base.Add(time.Minute))
	touchAt(t, target, "live", base.Add(2*time.Minute))

	// 保留 2 份：轮转产生 3 份归档，恰好删除最旧的 1 份
	e, err := New(target, &fakeWriter{create: true}, archiveConfig(100, 2), WithDelegate(rec))
	require.NoError(t, err)
	require.NoError(t, e.Rotate())

	assert.Equal(t, []string{"app.1.log", "app.2.log", "app.log"}, listDir(t, tmpDir))
	assert.Equal(t, "live", readFile(t, filepath.Join(tmpDir, "app.1.log")))
	assert.Equal(t, "gen1", readFile(t, filepath.Join(tmpDir, "app.2.log")))

	require.Len(t, rec.removed, 1)
	assert.Equal(t, filepath.Join(tmpDir, "app.3.log"), rec.removed[0])
}

func TestArchiveInPlaceRetentionZero(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "app.log")
	rec := &recorder{}

	touchAt(t, target, "live", time.Now())

	e, err := New(target, &fakeWriter{create: true}, archiveConfig(100, 0), WithDelegate(rec))
	require.NoError(t, err)
	require.NoError(t, e.Rotate())

	// 保留 0 份：归档后立即删除
	assert.Equal(t, []string{"app.log"}, listDir(t, tmpDir))
	require.Len(t, rec.archived, 1)
	require.Len(t, rec.removed, 1)
	assert.Equal(t, rec.archived[0][1], rec.removed[0])
}

func TestShiftSkipsOccupiedDestination(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "app.log")

	// app.2.log 是目录：扫描会跳过它，但它占用了 .1 的平移目的地
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "app.2.log"), 0o750))
	touchAt(t, filepath.Join(tmpDir, "app.1.log"), "gen1", time.Now().Add(-time.Minute))
	touchAt(t, target, "live", time.Now())

	var reported []error
	e, err := New(target, &fakeWriter{create: true}, archiveConfig(100, 10),
		WithOnError(func(err error) { reported = append(reported, err) }),
	)
	require.NoError(t, err)
	require.NoError(t, e.Rotate())

	// 平移被跳过且上报，但归档步骤照常执行：目标覆盖到代数 1
	assert.Equal(t, "live", readFile(t, filepath.Join(tmpDir, "app.1.log")))
	require.NotEmpty(t, reported)
	assert.Contains(t, reported[0].Error(), "destination exists")
}

// =============================================================================
// 原地归档 + 时间戳方案
// =============================================================================

func TestArchiveInPlaceTimestamped(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "app.log")
	rec := &recorder{}

	at := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)
	id := "123e4567-e89b-12d3-a456-426614174000"

	e, err := New(target, &fakeWriter{create: true},
		Config{
			Scheme:      xscheme.SchemeTimestampUnique,
			Strategy:    StrategyArchiveInPlace,
			MaxFileSize: 100,
			MaxArchived: 5,
		},
		WithDelegate(rec),
	)
	require.NoError(t, err)
	e.nowFn = func() time.Time { return at }
	e.newIDFn = func() string { return id }

	touchAt(t, target, "live", time.Now())
	require.NoError(t, e.Rotate())

	// 时间戳方案不平移，直接铸造带时间戳的归档名
	want := filepath.Join(tmpDir, "app.log.20250601T083000_"+id)
	assert.Equal(t, "live", readFile(t, want))
	require.Len(t, rec.archived, 1)
	assert.Equal(t, want, rec.archived[0][1])
}

// =============================================================================
// 新建文件策略
// =============================================================================

func TestCreateNewFileNumberingOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "app.log")
	w := &fakeWriter{create: true}

	cfg := Config{
		Scheme:      xscheme.SchemeNumbering,
		Strategy:    StrategyCreateNewFile,
		MaxFileSize: 100,
	}
	e, err := New(target, w, cfg)
	require.NoError(t, err)

	// 序号方案固定铸造代数 1：连续两次轮转得到同一路径（覆盖）
	require.NoError(t, e.Rotate())
	first := e.CurrentPath()
	require.NoError(t, e.Rotate())
	second := e.CurrentPath()

	assert.Equal(t, filepath.Join(tmpDir, "app.1.log"), first)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{first, first}, w.reopened)
}

func TestCreateNewFileTimestampedDistinct(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "app.log")
	w := &fakeWriter{create: true}

	cfg := Config{
		Scheme:      xscheme.SchemeTimestampUnique,
		Strategy:    StrategyCreateNewFile,
		MaxFileSize: 100,
	}
	e, err := New(target, w, cfg)
	require.NoError(t, err)

	// 同一秒内连续轮转：唯一标识保证路径互不相同
	at := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)
	e.nowFn = func() time.Time { return at }

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		require.NoError(t, e.Rotate())
		p := e.CurrentPath()
		assert.False(t, seen[p], "路径重复: %s", p)
		seen[p] = true
		assert.True(t, strings.HasPrefix(filepath.Base(p), "app_20250601T083000_"))
		assert.True(t, strings.HasSuffix(p, ".log"))
	}
}

func TestCreateNewFileLeavesHistory(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "app.log")
	w := &fakeWriter{create: true}

	cfg := Config{
		Scheme:      xscheme.SchemeTimestampUnique,
		Strategy:    StrategyCreateNewFile,
		MaxFileSize: 100,
		MaxArchived: 1, // 新建文件策略下不生效
	}
	e, err := New(target, w, cfg)
	require.NoError(t, err)

	touchAt(t, target, "live", time.Now())
	require.NoError(t, e.Rotate())
	require.NoError(t, e.Rotate())
	require.NoError(t, e.Rotate())

	// 不归档、不清理：旧文件原样累积
	assert.Equal(t, "live", readFile(t, target))
	assert.GreaterOrEqual(t, len(listDir(t, tmpDir)), 4)
}
