package listing

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDebouncer_ClampsToMinimum(t *testing.T) {
	assert.Equal(t, MinDebounce, NewDebouncer(10*time.Millisecond).Delay())
	assert.Equal(t, 200*time.Millisecond, NewDebouncer(200*time.Millisecond).Delay())
}

func TestDebouncer_OnlyLastCallRuns(t *testing.T) {
	d := NewDebouncer(MinDebounce)
	var last atomic.Int32
	var runs atomic.Int32

	for i := int32(1); i <= 5; i++ {
		i := i
		d.Trigger(func() {
			last.Store(i)
			runs.Add(1)
		})
	}

	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(2 * MinDebounce)
	assert.Equal(t, int32(1), runs.Load())
	assert.Equal(t, int32(5), last.Load())
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(MinDebounce)
	var runs atomic.Int32

	d.Trigger(func() { runs.Add(1) })
	assert.True(t, d.Stop())
	assert.False(t, d.Stop())

	time.Sleep(2 * MinDebounce)
	assert.Zero(t, runs.Load())
}
