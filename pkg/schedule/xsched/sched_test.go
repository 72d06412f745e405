package xsched

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTarget 记录轮转调用的假目标。
type fakeTarget struct {
	calls atomic.Int32
	err   error
}

func (f *fakeTarget) Rotate() error {
	f.calls.Add(1)
	return f.err
}

// waitFor 轮询等待条件成立。
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

// =============================================================================
// 注册测试
// =============================================================================

func TestAddValidation(t *testing.T) {
	s := New()

	_, err := s.Add("@daily", nil)
	assert.ErrorIs(t, err, ErrNilTarget)

	_, err = s.Add("not a cron spec", &fakeTarget{})
	assert.ErrorIs(t, err, ErrInvalidSpec)
}

func TestAddAndRemove(t *testing.T) {
	s := New()

	id, err := s.Add("@daily", &fakeTarget{})
	require.NoError(t, err)
	assert.Len(t, s.Entries(), 1)

	s.Remove(id)
	assert.Empty(t, s.Entries())
}

func TestSecondsPrecision(t *testing.T) {
	s := New(WithSeconds())

	// 6 段表达式需要秒级精度
	_, err := s.Add("*/1 * * * * *", &fakeTarget{})
	assert.NoError(t, err)
}

// =============================================================================
// 调度执行测试
// =============================================================================

func TestScheduledRotation(t *testing.T) {
	s := New(WithSeconds())
	target := &fakeTarget{}

	_, err := s.Add("*/1 * * * * *", target)
	require.NoError(t, err)

	s.Start()
	defer func() { <-s.Stop().Done() }()

	require.True(t, waitFor(t, 3*time.Second, func() bool { return target.calls.Load() >= 1 }),
		"每秒调度应在 3 秒内至少触发一次轮转")
}

func TestRotationErrorReported(t *testing.T) {
	var reported atomic.Int32
	s := New(WithSeconds(), WithOnError(func(err error) {
		if errors.Is(err, errRotate) {
			reported.Add(1)
		}
	}))

	target := &fakeTarget{err: errRotate}
	_, err := s.Add("*/1 * * * * *", target)
	require.NoError(t, err)

	s.Start()
	defer func() { <-s.Stop().Done() }()

	require.True(t, waitFor(t, 3*time.Second, func() bool { return reported.Load() >= 1 }),
		"轮转失败应经回调上报")
	// 失败不阻止后续调度
	assert.True(t, waitFor(t, 3*time.Second, func() bool { return target.calls.Load() >= 2 }))
}

var errRotate = errors.New("rotate failed")

func TestStopWaitsForRunning(t *testing.T) {
	s := New(WithSeconds())
	target := &fakeTarget{}

	_, err := s.Add("*/1 * * * * *", target)
	require.NoError(t, err)

	s.Start()
	ctx := s.Stop()

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Stop 返回的 context 应及时结束")
	}
}
