// Package controller provides the popup kinds used by popstack: dialogs,
// stack panels, sticky popovers and notifications.
package controller

import (
	"github.com/atomicstack/popstack/internal/future"
	"github.com/atomicstack/popstack/internal/popup"
)

// DefaultStates are the lifecycle tags shared by the kinds in this package.
var DefaultStates = popup.States{
	Initializing:    "initializing",
	Created:         "created",
	StartDestroying: "startDestroying",
	Destroying:      "destroying",
	Destroyed:       "destroyed",
}

// Base implements every controller hook with neutral behaviour. Kinds embed
// it and override what they need.
type Base struct {
	Hub *popup.Hub

	dragStart map[string]popup.Position
}

func NewBase(hub *popup.Hub) Base {
	return Base{Hub: hub}
}

func (b *Base) States() popup.States { return DefaultStates }

func (b *Base) DefaultConfig(*popup.Record) popup.ConfigResult { return popup.Proceed() }

func (b *Base) ElementUpdateOptions(*popup.Record, popup.Surface) popup.UpdateResult {
	return popup.Accept()
}

func (b *Base) BeforeUpdateOptions(*popup.Record) {}

func (b *Base) AfterUpdateOptions(*popup.Record) {}

func (b *Base) ElementCreated(r *popup.Record, _ popup.Surface) bool {
	r.State = DefaultStates.Created
	return true
}

func (b *Base) ElementUpdated(*popup.Record, popup.Surface) bool { return false }

func (b *Base) ElementAfterUpdated(*popup.Record, popup.Surface) bool { return false }

func (b *Base) ElementMaximized(r *popup.Record, _ popup.Surface, maximized bool) {
	r.Options.Maximize = maximized
}

func (b *Base) ElementAnimated(*popup.Record, popup.Surface) bool { return false }

func (b *Base) BeforeElementDestroyed(r *popup.Record, _ popup.Surface) bool {
	r.State = DefaultStates.StartDestroying
	return true
}

// ElementDestroyed marks the record destroying and settles once it is
// destroyed.
func (b *Base) ElementDestroyed(r *popup.Record, _ popup.Surface) *future.Future[future.Void] {
	r.State = DefaultStates.Destroying
	f, resolve, _ := future.New[future.Void](b.Hub.Loop())
	f.Then(func(future.Void) {
		r.State = DefaultStates.Destroyed
	})
	resolve(future.Void{})
	return f
}

func (b *Base) ResizeInner(*popup.Record, popup.Surface) bool        { return false }
func (b *Base) ResizeOuter(*popup.Record, popup.Surface) bool        { return false }
func (b *Base) PageScrolled(*popup.Record, popup.Surface) bool       { return false }
func (b *Base) WorkspaceResize(*popup.Record, popup.Surface) bool    { return false }
func (b *Base) OrientationChanged(*popup.Record, popup.Surface) bool { return false }
func (b *Base) UpdatePosition(*popup.Record, popup.Surface) bool     { return false }

func (b *Base) ClosesOnOutsideClick(r *popup.Record) bool {
	return r.Options.CloseOnOutsideClick
}

func (b *Base) CloseByOutsideClick(r *popup.Record) {
	b.Hub.Remove(r.ID)
}

func (b *Base) PopupMovingSize(r *popup.Record, off popup.Offset) {
	r.Sizes.Width += off.X
	r.Sizes.Height += off.Y
	r.Position.Width = max(r.Position.Width+off.X, 1)
	r.Position.Height = max(r.Position.Height+off.Y, 1)
}

// PopupDragStart moves the popup by off relative to where the drag began.
func (b *Base) PopupDragStart(r *popup.Record, _ popup.Surface, off popup.Offset) {
	if b.dragStart == nil {
		b.dragStart = make(map[string]popup.Position)
	}
	start, ok := b.dragStart[r.ID]
	if !ok {
		start = r.Position
		b.dragStart[r.ID] = start
	}
	r.Position.X = max(start.X+off.X, 0)
	r.Position.Y = max(start.Y+off.Y, 0)
}

func (b *Base) PopupDragEnd(r *popup.Record, _ popup.Offset) {
	delete(b.dragStart, r.ID)
}

func (b *Base) PopupMouseEnter(*popup.Record, popup.Surface) {}

func (b *Base) PopupMouseLeave(*popup.Record, popup.Surface) {}

func (b *Base) DragNDropOnPage(*popup.Record, popup.Surface, bool, popup.DragPhase) bool {
	return false
}

func (b *Base) NeedRecalcOnKeyboardShow() bool { return false }

// size returns the configured size of r bounded by the surface.
func size(r *popup.Record, s popup.Surface, defW, defH int) (int, int) {
	w, h := r.Options.Width, r.Options.Height
	if w <= 0 {
		w = defW
	}
	if h <= 0 {
		h = defH
	}
	sw, sh := s.Size()
	if sw > 0 && w > sw {
		w = sw
	}
	if sh > 0 && h > sh {
		h = sh
	}
	return w, h
}
