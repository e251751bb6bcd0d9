package timing

import (
	"sync"
	"time"
)

// Debouncer delays fn until wait has passed without another Call.
type Debouncer struct {
	fn   func()
	wait time.Duration

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// Debounce returns a Debouncer for fn. Each Call restarts the wait; fn runs
// once, on its own goroutine, after the calls go quiet.
func Debounce(fn func(), wait time.Duration) *Debouncer {
	return &Debouncer{fn: fn, wait: wait}
}

// Call schedules fn, cancelling any call still waiting.
func (d *Debouncer) Call() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.wait, func() {
		d.mu.Lock()
		// A Call, Stop or Flush after this timer was armed supersedes it.
		if gen != d.gen || d.timer == nil {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		d.fn()
	})
}

// Stop cancels a pending call. It reports whether one was pending.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.gen++
	return true
}

// Flush runs a pending call now on the caller's goroutine. It reports whether one was pending.
func (d *Debouncer) Flush() bool {
	if !d.Stop() {
		return false
	}
	d.fn()
	return true
}
