package util

import (
	"sync"
	"time"
)

// Debouncer runs the most recently scheduled function once the input has been
// quiet for the configured interval. Scheduling again before the interval
// elapses cancels the pending call.
type Debouncer struct {
	mu       sync.Mutex
	clock    Clock
	interval time.Duration
	timer    Timer
}

// NewDebouncer builds a Debouncer using clock for timing.
func NewDebouncer(clock Clock, interval time.Duration) *Debouncer {
	return &Debouncer{clock: clock, interval: interval}
}

// Schedule replaces any pending call with f.
func (d *Debouncer) Schedule(f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.interval, f)
}

// Cancel drops the pending call, if any. It reports whether a call was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}
