package services

import (
	"sync"
	"time"
)

// Debouncer collapses a burst of calls into one trailing call that runs
// once the caller has been quiet for the configured delay. Runs never
// overlap: a flush and a timer firing at the same moment execute one
// after the other.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
	gen     uint64
	stopped bool

	runMu   sync.Mutex
	running sync.WaitGroup
}

// NewDebouncer creates a debouncer with the given quiet interval.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule replaces any pending call with fn and restarts the quiet timer.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = fn
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Pending reports whether a call is waiting for its timer.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Flush runs the pending call now, if any, and reports whether it did.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	fn := d.takeLocked()
	if fn != nil {
		d.running.Add(1)
	}
	d.mu.Unlock()

	if fn == nil {
		return false
	}
	d.run(fn)
	return true
}

// Cancel drops the pending call without running it.
func (d *Debouncer) Cancel() {
	d.take()
}

// Stop cancels the pending call, rejects future schedules and waits for
// a call that is already running to return.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.takeLocked()
	d.mu.Unlock()

	d.running.Wait()
}

// take removes and returns the pending call, invalidating its timer.
func (d *Debouncer) take() func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.takeLocked()
}

func (d *Debouncer) takeLocked() func() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	fn := d.pending
	d.pending = nil
	d.gen++
	return fn
}

// fire runs the pending call if gen still identifies it.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.pending == nil {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.running.Add(1)
	d.mu.Unlock()

	d.run(fn)
}

// run executes a call claimed by Flush or fire.
func (d *Debouncer) run(fn func()) {
	defer d.running.Done()
	d.runMu.Lock()
	defer d.runMu.Unlock()
	fn()
}
