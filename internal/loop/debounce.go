package loop

import (
	"sync"
	"time"
)

// Debouncer collapses bursts of Trigger calls into a single task posted to
// the loop after the burst has been quiet for the configured delay.
type Debouncer struct {
	loop  *Loop
	delay time.Duration
	fn    func()

	mu    sync.Mutex
	timer Timer
	gen   int
}

// Debounce wraps fn. A zero delay still defers fn to the next loop task.
func (l *Loop) Debounce(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{loop: l, delay: delay, fn: fn}
}

// Trigger restarts the quiet window.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.loop.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Stop cancels a scheduled call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// fire ignores callbacks from timers that were superseded after they had
// already posted to the loop.
func (d *Debouncer) fire(gen int) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()
	d.fn()
}
