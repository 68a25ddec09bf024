package controller

import "github.com/atomicstack/popstack/internal/popup"

const (
	dialogWidth  = 44
	dialogHeight = 7
)

// Dialog centres popups on the surface.
type Dialog struct {
	Base
}

func NewDialog(hub *popup.Hub) *Dialog {
	return &Dialog{Base: NewBase(hub)}
}

func (d *Dialog) Kind() popup.Kind { return popup.KindDialog }

func (d *Dialog) ElementCreated(r *popup.Record, s popup.Surface) bool {
	d.center(r, s)
	return d.Base.ElementCreated(r, s)
}

func (d *Dialog) ElementUpdated(r *popup.Record, s popup.Surface) bool {
	d.center(r, s)
	return true
}

func (d *Dialog) ResizeOuter(r *popup.Record, s popup.Surface) bool {
	d.center(r, s)
	return true
}

func (d *Dialog) ResizeInner(r *popup.Record, s popup.Surface) bool {
	d.center(r, s)
	return true
}

func (d *Dialog) UpdatePosition(r *popup.Record, s popup.Surface) bool {
	d.center(r, s)
	return true
}

func (d *Dialog) OrientationChanged(r *popup.Record, s popup.Surface) bool {
	d.center(r, s)
	return true
}

func (d *Dialog) NeedRecalcOnKeyboardShow() bool { return true }

func (d *Dialog) ElementMaximized(r *popup.Record, s popup.Surface, maximized bool) {
	d.Base.ElementMaximized(r, s, maximized)
	d.center(r, s)
}

// center places r in the middle of the surface, or over all of it when
// maximized. A dialog being dragged stays where it is.
func (d *Dialog) center(r *popup.Record, s popup.Surface) {
	sw, sh := s.Size()
	if r.Options.Maximize {
		r.Position = popup.Position{Width: sw, Height: sh}
		return
	}
	if _, dragging := d.dragStart[r.ID]; dragging {
		return
	}
	w, h := size(r, s, dialogWidth, dialogHeight)
	r.Position = popup.Position{
		X:      max((sw-w)/2, 0),
		Y:      max((sh-h)/2, 0),
		Width:  w,
		Height: h,
	}
	r.Sizes = popup.Sizes{Width: w, Height: h}
}
