package controller

import "github.com/atomicstack/popstack/internal/popup"

// Data keys read by Sticky.
const (
	AnchorX = "anchorX"
	AnchorY = "anchorY"
)

const (
	stickyWidth  = 28
	stickyHeight = 5
)

// Sticky anchors popovers next to a cell and closes them on outside
// presses by default.
type Sticky struct {
	Base
}

func NewSticky(hub *popup.Hub) *Sticky {
	return &Sticky{Base: NewBase(hub)}
}

func (s *Sticky) Kind() popup.Kind { return popup.KindSticky }

func (s *Sticky) DefaultConfig(r *popup.Record) popup.ConfigResult {
	r.Options.CloseOnOutsideClick = true
	return popup.Proceed()
}

func (s *Sticky) ElementCreated(r *popup.Record, surface popup.Surface) bool {
	s.place(r, surface)
	return s.Base.ElementCreated(r, surface)
}

func (s *Sticky) ElementUpdated(r *popup.Record, surface popup.Surface) bool {
	s.place(r, surface)
	return true
}

func (s *Sticky) ElementAfterUpdated(r *popup.Record, surface popup.Surface) bool {
	return s.place(r, surface)
}

func (s *Sticky) PageScrolled(r *popup.Record, surface popup.Surface) bool {
	return s.place(r, surface)
}

func (s *Sticky) ResizeOuter(r *popup.Record, surface popup.Surface) bool {
	return s.place(r, surface)
}

func (s *Sticky) ResizeInner(r *popup.Record, surface popup.Surface) bool {
	return s.place(r, surface)
}

func (s *Sticky) UpdatePosition(r *popup.Record, surface popup.Surface) bool {
	return s.place(r, surface)
}

func (s *Sticky) NeedRecalcOnKeyboardShow() bool { return true }

// DragNDropOnPage closes the popover when a drag starts elsewhere on the
// page, unless it opened popups of its own.
func (s *Sticky) DragNDropOnPage(r *popup.Record, _ popup.Surface, insideDrag bool, _ popup.DragPhase) bool {
	return !insideDrag && r.Options.CloseOnOutsideClick && len(r.Children) == 0
}

// place positions r below and right of its anchor, flipped to stay on the
// surface. It reports whether the position changed.
func (s *Sticky) place(r *popup.Record, surface popup.Surface) bool {
	sw, sh := surface.Size()
	w, h := size(r, surface, stickyWidth, stickyHeight)
	ax, ay := anchor(r)
	x, y := ax, ay+1
	if x+w > sw {
		x = max(sw-w, 0)
	}
	if y+h > sh {
		y = max(ay-h, 0)
	}
	next := popup.Position{X: x, Y: y, Width: w, Height: h, Hidden: r.Position.Hidden}
	if next == r.Position {
		return false
	}
	r.Position = next
	r.Sizes = popup.Sizes{Width: w, Height: h}
	return true
}

func anchor(r *popup.Record) (int, int) {
	x, _ := r.Options.Data[AnchorX].(int)
	y, _ := r.Options.Data[AnchorY].(int)
	return x, y
}
