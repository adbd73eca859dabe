package search

import (
	"sync"
	"time"
)

// DebounceDelay is how long input must be stable before a query runs.
const DebounceDelay = 300 * time.Millisecond

// Debouncer delays query evaluation until input has settled, so interactive
// hosts don't scan on every keystroke. Each submission bumps a generation
// counter; a timer that fires with a stale generation does nothing.
type Debouncer struct {
	delay time.Duration
	fn    func(query string)

	mu      sync.Mutex
	gen     int
	pending string
}

// NewDebouncer creates a debouncer invoking fn once per settled query.
// A delay of zero uses DebounceDelay.
func NewDebouncer(delay time.Duration, fn func(query string)) *Debouncer {
	if delay <= 0 {
		delay = DebounceDelay
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Submit schedules query for evaluation after the delay. Submitting again
// before the delay elapses supersedes the previous submission. An empty
// query cancels any pending evaluation without scheduling a scan.
func (d *Debouncer) Submit(query string) {
	d.mu.Lock()
	d.gen++
	d.pending = query
	gen := d.gen
	d.mu.Unlock()

	if query == "" {
		return
	}

	time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		stale := d.gen != gen
		q := d.pending
		d.mu.Unlock()
		if stale {
			return
		}
		d.fn(q)
	})
}
