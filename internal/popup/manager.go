// Package popup coordinates the stack of overlays alive on one screen: their
// lifecycle, stacking order, nesting and teardown sequencing.
//
// All Manager, Container and Hub methods must run on the goroutine draining
// the loop they were created with.
package popup

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/atomicstack/popstack/internal/future"
	"github.com/atomicstack/popstack/internal/logging"
	"github.com/atomicstack/popstack/internal/logging/events"
	"github.com/atomicstack/popstack/internal/loop"
	"github.com/atomicstack/popstack/internal/pending"
)

// RemoveInitiatorInner marks popups closed from their own content.
const RemoveInitiatorInner = "innerTemplate"

// Delays bounds how often global signal handlers run.
type Delays struct {
	Scroll       time.Duration
	Resize       time.Duration
	Orientation  time.Duration
	Keyboard     time.Duration
	DragThrottle time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		Scroll:       10 * time.Millisecond,
		Resize:       10 * time.Millisecond,
		Orientation:  50 * time.Millisecond,
		Keyboard:     250 * time.Millisecond,
		DragThrottle: 10 * time.Millisecond,
	}
}

type ManagerOption func(*Manager)

func WithDelays(d Delays) ManagerOption {
	return func(m *Manager) { m.delays = d }
}

func WithBus(b *Bus) ManagerOption {
	return func(m *Manager) { m.bus = b }
}

// WithActiveNode sets the provider of the focused node, remembered on every
// new record to restore focus after teardown.
func WithActiveNode(fn func() Node) ManagerOption {
	return func(m *Manager) { m.activeNode = fn }
}

func WithIDGenerator(fn func() string) ManagerOption {
	return func(m *Manager) { m.newID = fn }
}

type eventHandler func(evt interface{}) bool

// Manager owns the ordered popup records.
type Manager struct {
	loop      *loop.Loop
	container *Container
	bus       *Bus
	delays    Delays

	items    []*Record
	creating map[string]int

	activeNode func() Node
	newID      func() string

	pageScrolled *loop.Debouncer
	resizeOuter  *loop.Debouncer
	dragGen      int
	dragTimer    loop.Timer

	handlers map[reflect.Type]eventHandler
}

// NewManager creates a Manager committing to c and attaches itself as c's
// event sink.
func NewManager(l *loop.Loop, c *Container, opts ...ManagerOption) *Manager {
	m := &Manager{
		loop:      l,
		container: c,
		delays:    DefaultDelays(),
		creating:  make(map[string]int),
		newID:     func() string { return "popup-" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.bus == nil {
		m.bus = NewBus()
	}
	m.pageScrolled = l.Debounce(m.delays.Scroll, m.pageScrolledBase)
	m.resizeOuter = l.Debounce(m.delays.Resize, m.resizeOuterBase)
	m.registerHandlers()
	c.attach(m)
	return m
}

// Close stops pending signal timers and detaches from the container.
func (m *Manager) Close() {
	m.pageScrolled.Stop()
	m.resizeOuter.Stop()
	m.dragGen++
	if m.dragTimer != nil {
		m.dragTimer.Stop()
		m.dragTimer = nil
	}
	m.container.attach(nil)
}

func (m *Manager) Bus() *Bus { return m.bus }

func (m *Manager) Container() *Container { return m.container }

// Show opens a popup and returns its id. Showing an id that is already live
// updates it instead.
func (m *Manager) Show(opts Options, ctrl Controller) string {
	if opts.ID != "" && m.Find(opts.ID) != nil {
		m.Update(opts.ID, opts)
		return opts.ID
	}
	r := m.newRecord(opts, ctrl)
	events.Popup.Show(r.ID, string(ctrl.Kind()), opts.Template)

	res := ctrl.DefaultConfig(r)
	switch res.verdict {
	case verdictVeto:
		m.discard(r)
	case verdictDeferred:
		m.creating[r.ID]++
		res.wait.OnSettle(func(_ future.Void, err error) {
			if m.creating[r.ID]--; m.creating[r.ID] <= 0 {
				delete(m.creating, r.ID)
			}
			if err != nil {
				logging.Error(fmt.Errorf("popup %s: default config: %w", r.ID, err))
				m.discard(r)
				return
			}
			// a competing show may have created the record while we waited
			if m.Find(r.ID) != nil {
				m.Update(r.ID, r.Options)
			} else {
				m.add(r)
			}
			m.redraw()
		})
	default:
		m.add(r)
		m.redraw()
	}
	return r.ID
}

func (m *Manager) newRecord(opts Options, ctrl Controller) *Record {
	id := opts.ID
	if id == "" {
		id = m.newID()
	}
	r := &Record{
		ID:         id,
		Controller: ctrl,
		Options:    opts.withID(id),
		State:      ctrl.States().Initializing,
		Modal:      opts.Modal,
	}
	if m.activeNode != nil {
		r.ActiveAfterDestroy = m.activeNode()
	}
	return r
}

func (m *Manager) discard(r *Record) {
	events.Popup.Veto(r.ID)
	m.unlinkFromParent(r)
	m.fire(r.Options, "onClose", r.Options.Handlers.OnClose)
}

func (m *Manager) add(r *Record) {
	m.items = append(m.items, r)
	m.linkToParent(r)
}

func (m *Manager) linkToParent(r *Record) {
	if r.Options.Opener == nil {
		return
	}
	id, ok := enclosingPopup(r.Options.Opener)
	if !ok || id == r.ID {
		return
	}
	parent := m.Find(id)
	if parent == nil {
		return
	}
	parent.Children = append(parent.Children, r)
	r.ParentID = parent.ID
}

func (m *Manager) unlinkFromParent(r *Record) {
	parent := m.Find(r.ParentID)
	if parent == nil {
		return
	}
	for i, child := range parent.Children {
		if child.ID == r.ID {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			return
		}
	}
}

// Update replaces the options of a live popup. It reports false when no such
// popup exists.
func (m *Manager) Update(id string, opts Options) (string, bool) {
	r := m.Find(id)
	if r == nil {
		return "", false
	}
	old := r.Options
	r.Options = opts.withID(id)

	res := r.Controller.ElementUpdateOptions(r, m.container)
	if res.verdict == verdictDeferred {
		res.wait.OnSettle(func(ok bool, err error) {
			if err != nil {
				logging.Error(fmt.Errorf("popup %s: update options: %w", id, err))
				ok = false
			}
			m.applyUpdate(r, old, ok)
		})
	} else {
		m.applyUpdate(r, old, res.verdict == verdictProceed)
	}
	return id, true
}

func (m *Manager) applyUpdate(r *Record, old Options, accepted bool) {
	events.Popup.Update(r.ID, accepted)
	if !accepted {
		r.Options = old
		return
	}
	r.Controller.BeforeUpdateOptions(r)
	r.Revision++
	m.redraw().Then(func(future.Void) {
		r.Controller.AfterUpdateOptions(r)
		if !r.Options.NoAutofocus {
			m.container.ActivatePopup(r.ID)
		}
	})
}

// UpdatePosition asks the controller to reposition the popup.
func (m *Manager) UpdatePosition(id string) {
	r := m.Find(id)
	if r != nil && r.Controller.UpdatePosition(r, m.container) {
		m.redraw()
	}
}

// UpdateOptionsAfterInitializing replaces the options of a popup that has
// not been mounted yet and reruns its default config.
func (m *Manager) UpdateOptionsAfterInitializing(id string, opts Options) {
	r := m.Find(id)
	if r == nil || !r.initializing() {
		return
	}
	r.Options = opts.withID(id)
	res := r.Controller.DefaultConfig(r)
	if res.verdict == verdictDeferred {
		res.wait.Then(func(future.Void) { m.redraw() })
		return
	}
	m.redraw()
}

// Remove closes the popup and every popup opened from it. The future
// resolves once the popup is gone, or immediately if its controller refused
// to close. It rejects with ErrRemoveCanceled when a pending operation
// cancelled the close or a child refused to close; the popup stays open.
func (m *Manager) Remove(id string) *future.Future[future.Void] {
	if r := m.findItem(id); r != nil && r.removal != nil {
		return r.removal
	}
	r := m.Find(id)
	if r == nil {
		return future.Done(m.loop)
	}
	if !r.Controller.BeforeElementDestroyed(r, m.container) {
		events.Popup.RemoveVetoed(id)
		return future.Done(m.loop)
	}
	events.Popup.Remove(id, len(r.Children))

	f, resolve, reject := future.New[future.Void](m.loop)
	r.removal = f
	abort := func(err error) {
		r.removal = nil
		r.closeChildren = nil
		r.State = r.Controller.States().Created
		reject(fmt.Errorf("remove %s: %w", id, ErrRemoveCanceled))
		if !errors.Is(err, ErrRemoveCanceled) && !errors.Is(err, pending.ErrCanceled) {
			logging.Error(err)
		}
		m.redraw()
	}
	m.closeChildren(r).OnSettle(func(_ future.Void, err error) {
		if err != nil {
			abort(err)
			return
		}
		m.finishPendings(r).OnSettle(func(_ future.Void, err error) {
			if err != nil {
				abort(err)
				return
			}
			m.removeElement(r).Then(func(future.Void) {
				resolve(future.Void{})
			})
		})
	})
	return f
}

// closeChildren removes every child of r and resolves once r has none left.
func (m *Manager) closeChildren(r *Record) *future.Future[future.Void] {
	if len(r.Children) == 0 {
		return future.Done(m.loop)
	}
	f, resolve, reject := future.New[future.Void](m.loop)
	r.closeChildren = func() {
		r.closeChildren = nil
		resolve(future.Void{})
	}
	for _, child := range append([]*Record(nil), r.Children...) {
		m.Remove(child.ID).OnSettle(func(_ future.Void, err error) {
			if r.closeChildren == nil {
				return
			}
			if err == nil && !m.vetoed(r, child) {
				return
			}
			r.closeChildren = nil
			if err == nil {
				err = fmt.Errorf("child %s refused to close: %w", child.ID, ErrRemoveCanceled)
			}
			reject(err)
		})
	}
	return f
}

// vetoed reports whether child is still open under parent after its removal
// settled, which means its controller refused to close.
func (m *Manager) vetoed(parent, child *Record) bool {
	return child.ParentID == parent.ID && m.Find(child.ID) == child && !child.destroying()
}

func (m *Manager) finishPendings(r *Record) *future.Future[future.Void] {
	reg := m.container.Pending()
	if reg == nil {
		return future.Done(m.loop)
	}
	if r.removePending != nil {
		return r.removePending
	}
	f, resolve, reject := future.New[future.Void](m.loop)
	r.removePending = f
	reg.Finish(r.ID, false).OnSettle(func(_ future.Void, err error) {
		r.removePending = nil
		switch {
		case err == nil:
			resolve(future.Void{})
		case errors.Is(err, pending.ErrCanceled):
			r.State = r.Controller.States().Created
			reject(err)
		default:
			logging.Error(fmt.Errorf("popup %s: finish pending operations: %w", r.ID, err))
			resolve(future.Void{})
		}
	})
	return f
}

func (m *Manager) removeElement(r *Record) *future.Future[future.Void] {
	destroyed := r.Controller.ElementDestroyed(r, m.container)
	m.redraw()
	m.notify(EventPopupBeforeDestroyed, r)

	f, resolve, _ := future.New[future.Void](m.loop)
	destroyed.OnSettle(func(_ future.Void, err error) {
		if err != nil {
			logging.Error(fmt.Errorf("popup %s: element destroyed: %w", r.ID, err))
		}
		r.removal = nil
		m.detach(r)
		m.container.RemovePopupItem(m.snapshot(), r.Snapshot(), func(removed Record) {
			m.fire(removed.Options, "onClose", removed.Options.Handlers.OnClose)
		})
		m.redraw()
		m.notify(EventPopupDestroyed, r)
		events.Popup.Removed(r.ID)
		resolve(future.Void{})
	})
	return f
}

// detach drops r from the list and its parent. A parent waiting for its
// children is released once the last one is gone.
func (m *Manager) detach(r *Record) {
	for i, item := range m.items {
		if item == r {
			m.items = append(m.items[:i], m.items[i+1:]...)
			break
		}
	}
	parent := m.Find(r.ParentID)
	m.unlinkFromParent(r)
	if parent != nil && len(parent.Children) == 0 && parent.closeChildren != nil {
		parent.closeChildren()
	}
}

// Find returns the live record for id, or nil when it is absent or already
// being destroyed.
func (m *Manager) Find(id string) *Record {
	r := m.findItem(id)
	if r == nil || r.gone() {
		return nil
	}
	return r
}

// findItem returns the record for id in any state, preferring a live one
// over a predecessor that is still tearing down.
func (m *Manager) findItem(id string) *Record {
	if id == "" {
		return nil
	}
	var found *Record
	for _, r := range m.items {
		if r.ID != id {
			continue
		}
		if !r.gone() {
			return r
		}
		found = r
	}
	return found
}

// IsDestroying reports whether the popup is tearing down, including the
// window after it left the list but before the container committed.
func (m *Manager) IsDestroying(id string) bool {
	r := m.findItem(id)
	if r == nil {
		for _, removing := range m.container.RemovingItems() {
			if removing.ID == id {
				return true
			}
		}
		return false
	}
	return r.destroying()
}

// IsPopupCreating reports whether the popup was requested but has not been
// mounted yet.
func (m *Manager) IsPopupCreating(id string) bool {
	if m.creating[id] > 0 {
		return true
	}
	r := m.Find(id)
	if r == nil {
		return false
	}
	_, mounted := m.container.Host(id)
	return r.initializing() && !mounted
}

// Items returns a snapshot of every record in stacking order.
func (m *Manager) Items() []Record {
	return m.snapshot()
}

func (m *Manager) snapshot() []Record {
	out := make([]Record, len(m.items))
	for i, r := range m.items {
		out[i] = r.Snapshot()
	}
	return out
}

func (m *Manager) redraw() *future.Future[future.Void] {
	m.updateZIndex()
	if logging.TraceEnabled() {
		z := make(map[string]int, len(m.items))
		for _, r := range m.items {
			z[r.ID] = r.CurrentZIndex
		}
		events.Popup.Redraw(z)
	}
	return m.container.SetPopupItems(m.snapshot())
}

func (m *Manager) notify(name string, r *Record) {
	m.bus.Notify(Notification{Name: name, Item: r.Snapshot(), Items: m.snapshot()})
}

func (m *Manager) fire(opts Options, name string, fn func(Options)) {
	if fn == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			logging.Error(fmt.Errorf("popup %s (template %q): %s handler panicked: %v", opts.ID, opts.Template, name, rec))
		}
	}()
	fn(opts)
}
