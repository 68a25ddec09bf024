package controller

import (
	"time"

	"github.com/atomicstack/popstack/internal/future"
	"github.com/atomicstack/popstack/internal/loop"
	"github.com/atomicstack/popstack/internal/popup"
)

const (
	notificationWidth  = 36
	notificationHeight = 4
)

// Notification stacks popups upwards from the bottom-right corner, newest
// at the bottom. Notifications never take focus and survive navigation.
type Notification struct {
	Base

	// AutoClose removes each notification after the delay; zero keeps them.
	AutoClose time.Duration

	items  []*popup.Record
	timers map[string]loop.Timer
}

func NewNotification(hub *popup.Hub, autoClose time.Duration) *Notification {
	return &Notification{
		Base:      NewBase(hub),
		AutoClose: autoClose,
		timers:    make(map[string]loop.Timer),
	}
}

func (n *Notification) Kind() popup.Kind { return popup.KindNotification }

func (n *Notification) DefaultConfig(r *popup.Record) popup.ConfigResult {
	r.Options.NoAutofocus = true
	return popup.Proceed()
}

func (n *Notification) ElementCreated(r *popup.Record, s popup.Surface) bool {
	n.items = append([]*popup.Record{r}, n.items...)
	n.layout(s)
	if n.AutoClose > 0 {
		id := r.ID
		n.timers[id] = n.Hub.Loop().AfterFunc(n.AutoClose, func() {
			delete(n.timers, id)
			n.Hub.Remove(id)
		})
	}
	return n.Base.ElementCreated(r, s)
}

func (n *Notification) ElementUpdated(_ *popup.Record, s popup.Surface) bool {
	n.layout(s)
	return true
}

func (n *Notification) ResizeOuter(_ *popup.Record, s popup.Surface) bool {
	n.layout(s)
	return true
}

func (n *Notification) ElementDestroyed(r *popup.Record, s popup.Surface) *future.Future[future.Void] {
	if t, ok := n.timers[r.ID]; ok {
		t.Stop()
		delete(n.timers, r.ID)
	}
	for i, item := range n.items {
		if item == r {
			n.items = append(n.items[:i], n.items[i+1:]...)
			break
		}
	}
	n.layout(s)
	return n.Base.ElementDestroyed(r, s)
}

func (n *Notification) layout(s popup.Surface) {
	sw, sh := s.Size()
	bottom := sh
	for _, r := range n.items {
		w, h := size(r, s, notificationWidth, notificationHeight)
		bottom -= h
		r.Position = popup.Position{
			X:      max(sw-w, 0),
			Y:      max(bottom, 0),
			Width:  w,
			Height: h,
			Hidden: bottom < 0,
		}
		r.Sizes = popup.Sizes{Width: w, Height: h}
	}
}
