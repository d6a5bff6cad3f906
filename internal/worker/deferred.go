// worker/deferred.go
package worker

import (
	"sync"
	"time"
)

// Deferred is a single background task that runs once after a delay unless
// cancelled first. The quiz controller uses it for the reveal delay between
// submitting an answer and advancing to the next question.
type Deferred struct {
	timer *time.Timer

	mu        sync.Mutex
	cancelled bool
}

// Defer schedules fn to run after delay. fn runs on its own goroutine.
func Defer(delay time.Duration, fn func()) *Deferred {
	d := &Deferred{}
	d.timer = time.AfterFunc(delay, func() {
		d.mu.Lock()
		cancelled := d.cancelled
		d.mu.Unlock()
		if cancelled {
			return
		}
		fn()
	})
	return d
}

// Cancel suppresses the task. Safe to call more than once and after the
// task has already run.
func (d *Deferred) Cancel() {
	d.mu.Lock()
	d.cancelled = true
	d.mu.Unlock()
	d.timer.Stop()
}
