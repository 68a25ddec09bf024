package controller

import (
	"github.com/atomicstack/popstack/internal/future"
	"github.com/atomicstack/popstack/internal/popup"
)

// Stack opens full-height panels on the hub's stack side. A panel fully
// covered by a later, wider one is hidden.
type Stack struct {
	Base
	panels []*popup.Record
}

func NewStack(hub *popup.Hub) *Stack {
	return &Stack{Base: NewBase(hub)}
}

func (s *Stack) Kind() popup.Kind { return popup.KindStack }

func (s *Stack) ElementCreated(r *popup.Record, surface popup.Surface) bool {
	s.panels = append(s.panels, r)
	s.layout(surface)
	return s.Base.ElementCreated(r, surface)
}

func (s *Stack) ElementUpdated(r *popup.Record, surface popup.Surface) bool {
	s.layout(surface)
	return true
}

func (s *Stack) ResizeOuter(_ *popup.Record, surface popup.Surface) bool {
	s.layout(surface)
	return true
}

func (s *Stack) WorkspaceResize(_ *popup.Record, surface popup.Surface) bool {
	s.layout(surface)
	return true
}

func (s *Stack) UpdatePosition(_ *popup.Record, surface popup.Surface) bool {
	s.layout(surface)
	return true
}

func (s *Stack) ElementDestroyed(r *popup.Record, surface popup.Surface) *future.Future[future.Void] {
	for i, p := range s.panels {
		if p == r {
			s.panels = append(s.panels[:i], s.panels[i+1:]...)
			break
		}
	}
	s.layout(surface)
	return s.Base.ElementDestroyed(r, surface)
}

func (s *Stack) layout(surface popup.Surface) {
	sw, sh := surface.Size()
	left := s.Hub.StackPosition() == popup.StackLeft
	for _, r := range s.panels {
		w, _ := size(r, surface, max(sw/2, 20), sh)
		if r.Options.Maximize {
			w = sw
		}
		x := max(sw-w, 0)
		if left {
			x = 0
		}
		r.Position = popup.Position{X: x, Y: 0, Width: w, Height: sh}
		r.Sizes = popup.Sizes{Width: w, Height: sh}
	}
	for i, r := range s.panels {
		r.Position.Hidden = false
		for _, above := range s.panels[i+1:] {
			if above.Position.Width >= r.Position.Width {
				r.Position.Hidden = true
				break
			}
		}
	}
}
