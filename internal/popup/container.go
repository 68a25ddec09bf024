package popup

import (
	"sort"

	"github.com/atomicstack/popstack/internal/future"
	"github.com/atomicstack/popstack/internal/logging/events"
	"github.com/atomicstack/popstack/internal/loop"
	"github.com/atomicstack/popstack/internal/pending"
	"github.com/atomicstack/popstack/internal/theme"
)

type dispatcher interface {
	Dispatch(evt interface{})
}

// Mounted is a popup host placed on the surface. Its record is the snapshot
// of the last commit; its parent node is the opener, so nodes inside the
// popup resolve to it when walking up the tree.
type Mounted struct {
	Record
}

func (h *Mounted) PopupID() string { return h.ID }

func (h *Mounted) ParentNode() Node {
	if h.Options.Opener == nil {
		return nil
	}
	return h.Options.Opener
}

type removedItem struct {
	record   Record
	callback func(Record)
}

// ContainerOption customises a Container.
type ContainerOption func(*Container)

func WithTheme(s *theme.Styles) ContainerOption {
	return func(c *Container) { c.styles = s }
}

// Container is the mount surface. It receives read-only snapshots from the
// Manager and commits them once per loop tick.
type Container struct {
	loop    *loop.Loop
	pending *pending.Registrar
	styles  *theme.Styles
	sink    dispatcher

	items        []Record
	overlayIndex int
	mounted      map[string]*Mounted
	removing     []removedItem

	redraw        *future.Future[future.Void]
	resolveRedraw func(future.Void)
	scheduled     bool
	commits       int

	focused       string
	width, height int
}

func NewContainer(l *loop.Loop, reg *pending.Registrar, opts ...ContainerOption) *Container {
	c := &Container{
		loop:         l,
		pending:      reg,
		styles:       theme.Default(),
		overlayIndex: -1,
		mounted:      make(map[string]*Mounted),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Container) attach(d dispatcher) {
	c.sink = d
}

func (c *Container) dispatch(evt interface{}) {
	if c.sink != nil {
		c.sink.Dispatch(evt)
	}
}

// SetPopupItems stores a new snapshot and returns the future of the next
// commit. Every call before that commit shares the same future.
func (c *Container) SetPopupItems(items []Record) *future.Future[future.Void] {
	c.items = items
	c.calcOverlayIndex()
	if c.redraw == nil {
		c.redraw, c.resolveRedraw, _ = future.New[future.Void](c.loop)
	}
	if !c.scheduled {
		c.scheduled = true
		c.loop.Post(c.commit)
	}
	return c.redraw
}

// RemovePopupItem queues cb until the commit that unmounts removed.
func (c *Container) RemovePopupItem(items []Record, removed Record, cb func(Record)) {
	c.removing = append(c.removing, removedItem{record: removed, callback: cb})
	c.SetPopupItems(items)
}

// RemovingItems lists records removed from the list but not yet unmounted.
func (c *Container) RemovingItems() []Record {
	out := make([]Record, len(c.removing))
	for i, rm := range c.removing {
		out[i] = rm.record
	}
	return out
}

func (c *Container) calcOverlayIndex() {
	c.overlayIndex = -1
	best := 0
	for i, item := range c.items {
		if !item.Modal {
			continue
		}
		if c.overlayIndex == -1 || item.CurrentZIndex > best {
			c.overlayIndex = i
			best = item.CurrentZIndex
		}
	}
}

// OverlayIndex is the list position of the topmost modal popup.
func (c *Container) OverlayIndex() (int, bool) {
	return c.overlayIndex, c.overlayIndex >= 0
}

// OverlayID is the id of the topmost modal popup.
func (c *Container) OverlayID() (string, bool) {
	if c.overlayIndex < 0 || c.overlayIndex >= len(c.items) {
		return "", false
	}
	return c.items[c.overlayIndex].ID, true
}

func (c *Container) commit() {
	c.scheduled = false
	resolve := c.resolveRedraw
	c.redraw, c.resolveRedraw = nil, nil
	c.commits++

	present := make(map[string]bool, len(c.items))
	var created, updated []string
	for _, item := range c.items {
		present[item.ID] = true
		h, ok := c.mounted[item.ID]
		if !ok {
			c.mounted[item.ID] = &Mounted{Record: item}
			created = append(created, item.ID)
			events.Container.Mount(item.ID)
			continue
		}
		if h.Revision != item.Revision {
			updated = append(updated, item.ID)
		}
		h.Record = item
	}

	var gone []string
	for id := range c.mounted {
		if !present[id] {
			gone = append(gone, id)
		}
	}
	sort.Strings(gone)
	for _, id := range gone {
		h := c.mounted[id]
		delete(c.mounted, id)
		events.Container.Unmount(id)
		if c.focused == id {
			c.restoreFocus(h)
		}
	}

	for _, id := range created {
		c.dispatch(BeforePaintOnMount{ID: id})
		c.dispatch(PopupCreated{ID: id})
		if h, ok := c.mounted[id]; ok && !h.Options.NoAutofocus {
			c.focused = id
		}
	}
	for _, id := range updated {
		c.dispatch(PopupUpdated{ID: id})
		c.dispatch(PopupAfterUpdated{ID: id})
	}

	removing := c.removing
	c.removing = nil
	for _, rm := range removing {
		rm.callback(rm.record)
	}
	events.Container.Commit(len(c.items), len(created), len(gone))
	if resolve != nil {
		resolve(future.Void{})
	}
}

// restoreFocus moves focus back to the popup that was focused when h
// opened, or drops it.
func (c *Container) restoreFocus(h *Mounted) {
	c.focused = ""
	if h.ActiveAfterDestroy == nil {
		return
	}
	if id, ok := enclosingPopup(h.ActiveAfterDestroy); ok {
		if _, mounted := c.mounted[id]; mounted {
			c.focused = id
		}
	}
}

// Commits counts the commits performed so far.
func (c *Container) Commits() int { return c.commits }

// Host returns the mounted instance for id.
func (c *Container) Host(id string) (*Mounted, bool) {
	h, ok := c.mounted[id]
	return h, ok
}

// Hosts returns the mounted instances from bottom to top.
func (c *Container) Hosts() []*Mounted {
	out := make([]*Mounted, 0, len(c.mounted))
	for _, h := range c.mounted {
		out = append(out, h)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CurrentZIndex != out[j].CurrentZIndex {
			return out[i].CurrentZIndex < out[j].CurrentZIndex
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ActivatePopup focuses a mounted popup.
func (c *Container) ActivatePopup(id string) {
	if _, ok := c.mounted[id]; !ok {
		return
	}
	c.focused = id
	c.dispatch(PopupActivated{ID: id})
}

// Focused returns the id of the focused popup.
func (c *Container) Focused() (string, bool) {
	if _, ok := c.mounted[c.focused]; !ok {
		return "", false
	}
	return c.focused, true
}

func (c *Container) SetSize(width, height int) {
	c.width, c.height = width, height
}

func (c *Container) Size() (int, int) {
	return c.width, c.height
}

func (c *Container) Pending() *pending.Registrar { return c.pending }

// RegisterPending registers op against the popup id root.
func (c *Container) RegisterPending(root string, op *future.Future[future.Void], cfg pending.Config) int {
	if c.pending == nil {
		return 0
	}
	return c.pending.Register(root, op, cfg)
}

func (c *Container) FinishPending(root string, force bool) *future.Future[future.Void] {
	if c.pending == nil {
		return future.Done(c.loop)
	}
	return c.pending.Finish(root, force)
}

func (c *Container) CancelFinishingPending(root string) {
	if c.pending != nil {
		c.pending.CancelFinishing(root)
	}
}
