package session

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period applied to parameter changes before
// derived state is recomputed. Rapid-fire updates (slider drags, marching
// crop handles) collapse into a single recomputation.
const DefaultDebounce = 200 * time.Millisecond

// Debouncer coalesces bursts of Schedule calls into one execution of the
// most recently scheduled function after a quiet period. A newer Schedule
// always stops and replaces the pending timer, and Cancel withdraws any
// pending execution without running it.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer returns a Debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule arranges for fn to run once the quiet period elapses with no
// further Schedule or Cancel calls. Any previously pending function is
// dropped. fn runs on its own goroutine.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Cancel withdraws the pending execution, if any. It does not wait for a
// function that has already started running.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
