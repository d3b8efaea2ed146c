package services

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_CollapsesBurst(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var calls, last atomic.Int32

	for i := 1; i <= 5; i++ {
		n := int32(i)
		d.Schedule(func() {
			calls.Add(1)
			last.Store(n)
		})
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(5), last.Load())
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	var calls atomic.Int32

	d.Schedule(func() { calls.Add(1) })
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 2*time.Millisecond)

	d.Schedule(func() { calls.Add(1) })
	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 2*time.Millisecond)
}

func TestDebouncer_Flush(t *testing.T) {
	d := NewDebouncer(time.Hour)
	var calls atomic.Int32

	d.Schedule(func() { calls.Add(1) })
	assert.True(t, d.Pending())

	assert.True(t, d.Flush())
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, d.Pending())
	assert.False(t, d.Flush())
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	var calls atomic.Int32

	d.Schedule(func() { calls.Add(1) })
	d.Cancel()

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestDebouncer_StopRejectsSchedule(t *testing.T) {
	d := NewDebouncer(time.Millisecond)
	var calls atomic.Int32

	d.Stop()
	d.Schedule(func() { calls.Add(1) })

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
	assert.False(t, d.Pending())
}

func TestDebouncer_StopWaitsForRunningCall(t *testing.T) {
	d := NewDebouncer(time.Millisecond)
	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool

	d.Schedule(func() {
		close(started)
		<-release
		finished.Store(true)
	})
	<-started

	stopped := make(chan bool)
	go func() {
		d.Stop()
		stopped <- finished.Load()
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while the call was running")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	assert.True(t, <-stopped)
}
