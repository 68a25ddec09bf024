package popup

import (
	"github.com/atomicstack/popstack/internal/future"
	"github.com/atomicstack/popstack/internal/loop"
)

// Stack panel sides.
const (
	StackRight = "right"
	StackLeft  = "left"
)

// Hub is handed to popup producers instead of the Manager. It forwards to
// whichever Manager is mounted and answers neutrally before that.
type Hub struct {
	loop      *loop.Loop
	manager   *Manager
	container *Container

	theme         string
	headerTheme   string
	stackPosition string
	contentData   map[string]interface{}
}

func NewHub(l *loop.Loop) *Hub {
	return &Hub{loop: l, stackPosition: StackRight}
}

// SetManager mounts m; nil unmounts.
func (h *Hub) SetManager(m *Manager) { h.manager = m }

// SetContainer mounts c; nil unmounts.
func (h *Hub) SetContainer(c *Container) { h.container = c }

func (h *Hub) Loop() *loop.Loop { return h.loop }

func (h *Hub) Manager() *Manager { return h.manager }

func (h *Hub) Container() *Container { return h.container }

// Ready reports whether a Manager is mounted.
func (h *Hub) Ready() bool { return h.manager != nil }

func (h *Hub) Find(id string) *Record {
	if h.manager == nil {
		return nil
	}
	return h.manager.Find(id)
}

// Show returns the popup id, or "" when no Manager is mounted.
func (h *Hub) Show(opts Options, ctrl Controller) string {
	if h.manager == nil {
		return ""
	}
	return h.manager.Show(opts, ctrl)
}

func (h *Hub) Update(id string, opts Options) (string, bool) {
	if h.manager == nil {
		return "", false
	}
	return h.manager.Update(id, opts)
}

func (h *Hub) Remove(id string) *future.Future[future.Void] {
	if h.manager == nil {
		return future.Done(h.loop)
	}
	return h.manager.Remove(id)
}

func (h *Hub) IsDestroying(id string) bool {
	return h.manager != nil && h.manager.IsDestroying(id)
}

func (h *Hub) IsPopupCreating(id string) bool {
	return h.manager != nil && h.manager.IsPopupCreating(id)
}

func (h *Hub) UpdatePosition(id string) {
	if h.manager != nil {
		h.manager.UpdatePosition(id)
	}
}

func (h *Hub) UpdateOptionsAfterInitializing(id string, opts Options) {
	if h.manager != nil {
		h.manager.UpdateOptionsAfterInitializing(id, opts)
	}
}

func (h *Hub) PopupUpdated(id string) {
	if h.manager != nil {
		h.manager.PopupUpdated(id)
	}
}

// Notify forwards an event to the Manager's dispatcher.
func (h *Hub) Notify(evt interface{}) {
	if h.manager != nil {
		h.manager.Dispatch(evt)
	}
}

func (h *Hub) Search(query string) []Record {
	if h.manager == nil {
		return nil
	}
	return h.manager.Search(query)
}

func (h *Hub) SetTheme(name string)       { h.theme = name }
func (h *Hub) Theme() string              { return h.theme }
func (h *Hub) SetHeaderTheme(name string) { h.headerTheme = name }
func (h *Hub) HeaderTheme() string        { return h.headerTheme }

// SetStackPosition selects the side stack panels open on. Anything other
// than StackLeft means right.
func (h *Hub) SetStackPosition(side string) {
	if side != StackLeft {
		side = StackRight
	}
	h.stackPosition = side
}

func (h *Hub) StackPosition() string { return h.stackPosition }

func (h *Hub) SetContentData(data map[string]interface{}) { h.contentData = data }

func (h *Hub) ContentData() map[string]interface{} { return h.contentData }
