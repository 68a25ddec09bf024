// Package pending tracks asynchronous operations that must settle before the
// popup they belong to may be destroyed.
package pending

import (
	"errors"
	"fmt"

	"github.com/atomicstack/popstack/internal/future"
	"github.com/atomicstack/popstack/internal/logging/events"
	"github.com/atomicstack/popstack/internal/loop"
)

// ErrCanceled rejects a Finish future when the finishing was cancelled by the
// pending operation's owner.
var ErrCanceled = errors.New("pending: finishing canceled")

// Config describes how a pending operation takes part in finishing.
type Config struct {
	// OnPendingFail is invoked when someone asks the root to finish. The
	// owner should settle its operation or call CancelFinishing.
	OnPendingFail func(force bool)
	// Validate filters registrations that no longer block. Nil means the
	// registration always blocks.
	Validate func() bool
}

type entry struct {
	id  int
	op  *future.Future[future.Void]
	cfg Config
}

type finishing struct {
	f      *future.Future[future.Void]
	reject func(error)
}

// Registrar is keyed by root popup id so operations for different popups
// never wait for each other. All methods must run on the loop goroutine.
type Registrar struct {
	loop      *loop.Loop
	seq       int
	pendings  map[string][]*entry
	finishing map[string]*finishing
}

// New creates an empty registrar bound to l.
func New(l *loop.Loop) *Registrar {
	return &Registrar{
		loop:      l,
		pendings:  make(map[string][]*entry),
		finishing: make(map[string]*finishing),
	}
}

// Register adds op under root and returns its registration id. The
// registration is dropped automatically once op settles.
func (r *Registrar) Register(root string, op *future.Future[future.Void], cfg Config) int {
	r.seq++
	e := &entry{id: r.seq, op: op, cfg: cfg}
	r.pendings[root] = append(r.pendings[root], e)
	events.Pending.Register(root, len(r.pendings[root]))
	op.OnSettle(func(future.Void, error) {
		r.Unregister(root, e.id)
	})
	return e.id
}

// Unregister removes a registration by id.
func (r *Registrar) Unregister(root string, id int) {
	list := r.pendings[root]
	for i, e := range list {
		if e.id == id {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(r.pendings, root)
		return
	}
	r.pendings[root] = list
}

// HasRegistered reports whether root has at least one blocking operation.
// An empty root matches every registration.
func (r *Registrar) HasRegistered(root string) bool {
	return len(r.active(root)) > 0
}

func (r *Registrar) active(root string) []*entry {
	var lists [][]*entry
	if root == "" {
		for _, list := range r.pendings {
			lists = append(lists, list)
		}
	} else {
		lists = append(lists, r.pendings[root])
	}
	var out []*entry
	for _, list := range lists {
		for _, e := range list {
			if e.cfg.Validate == nil || e.cfg.Validate() {
				out = append(out, e)
			}
		}
	}
	return out
}

// Finish resolves once every blocking operation for root settled. It rejects
// with ErrCanceled when CancelFinishing is called first, or with the
// operation's error when one fails. Concurrent calls share one future.
func (r *Registrar) Finish(root string, force bool) *future.Future[future.Void] {
	if fin, ok := r.finishing[root]; ok {
		return fin.f
	}
	entries := r.active(root)
	if len(entries) == 0 {
		return future.Done(r.loop)
	}
	f, resolve, reject := future.New[future.Void](r.loop)
	fin := &finishing{f: f, reject: reject}
	r.finishing[root] = fin
	events.Pending.Finish(root, len(entries))

	ops := make([]*future.Future[future.Void], 0, len(entries))
	for _, e := range entries {
		ops = append(ops, e.op)
	}
	future.All(r.loop, ops...).OnSettle(func(_ []future.Void, err error) {
		if r.finishing[root] == fin {
			delete(r.finishing, root)
		}
		if err != nil {
			reject(fmt.Errorf("pending operation for %q: %w", root, err))
			return
		}
		resolve(future.Void{})
	})
	for _, e := range entries {
		if e.cfg.OnPendingFail != nil {
			e.cfg.OnPendingFail(force)
		}
	}
	return f
}

// IsFinishing reports whether a Finish for root is outstanding.
func (r *Registrar) IsFinishing(root string) bool {
	_, ok := r.finishing[root]
	return ok
}

// CancelFinishing aborts an outstanding Finish for root.
func (r *Registrar) CancelFinishing(root string) {
	fin, ok := r.finishing[root]
	if !ok {
		return
	}
	delete(r.finishing, root)
	events.Pending.Cancel(root)
	fin.reject(ErrCanceled)
}
