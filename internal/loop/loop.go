// Package loop provides the single-threaded command queue every popup
// mutation runs on.
//
// Tasks are posted from any goroutine and executed by whichever goroutine
// calls Drain (or Run). Timers never run their callbacks directly: they post
// them to the queue, so a debounced handler observes the same ownership rules
// as any other task.
package loop

import (
	"context"
	"sync"
	"time"
)

// Loop is a FIFO task queue with a wake-up channel.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	closed  bool
	wake    chan struct{}
	sched   Scheduler
	running bool
}

// Option customises a Loop.
type Option func(*Loop)

// WithScheduler replaces the wall-clock timer source.
func WithScheduler(s Scheduler) Option {
	return func(l *Loop) {
		if s != nil {
			l.sched = s
		}
	}
}

// New creates an idle loop.
func New(opts ...Option) *Loop {
	l := &Loop{
		wake:  make(chan struct{}, 1),
		sched: wallClock{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Post enqueues fn. It is safe to call from any goroutine; tasks posted after
// Close are dropped.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Wake fires whenever new work was posted.
func (l *Loop) Wake() <-chan struct{} {
	return l.wake
}

// Pending reports the number of queued tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Drain runs queued tasks, including ones posted while draining, until the
// queue is empty. It returns the number of tasks executed. Re-entrant calls
// from inside a task return 0 immediately.
func (l *Loop) Drain() int {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return 0
	}
	l.running = true
	l.mu.Unlock()

	ran := 0
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.running = false
			l.mu.Unlock()
			return ran
		}
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()
		for _, fn := range batch {
			fn()
			ran++
		}
	}
}

// Run drains the queue every time work arrives until ctx is done or the loop
// is closed.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.Drain()
		if l.isClosed() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Close stops accepting new tasks. Already queued tasks are discarded.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.queue = nil
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// AfterFunc posts fn to the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	return l.sched.AfterFunc(d, func() { l.Post(fn) })
}
