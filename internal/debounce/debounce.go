// Package debounce provides a small debouncer with explicit cancellation.
// The storefront uses it to coalesce bursty work such as availability checks.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delays running a function until the configured quiet period has
// elapsed without another call to Do. Each Do replaces any pending call.
type Debouncer struct {
	mutex sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// New creates a debouncer with the given quiet period
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Do schedules fn to run after the quiet period, replacing any pending call.
func (d *Debouncer) Do(fn func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(d.delay, func() {
		d.mutex.Lock()
		// A newer Do may have replaced this timer already; only clear our own.
		if d.timer == t {
			d.timer = nil
		}
		d.mutex.Unlock()
		fn()
	})
	d.timer = t
}

// Cancel drops any pending call without running it.
func (d *Debouncer) Cancel() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a call is currently scheduled. A call that has
// already fired no longer counts as pending.
func (d *Debouncer) Pending() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.timer != nil
}
