package popup

import "github.com/atomicstack/popstack/internal/logging/events"

type positionHook func(c Controller, r *Record, s Surface) bool

// PageScrolled schedules a debounced reposition after the page scrolled.
func (m *Manager) PageScrolled() { m.pageScrolled.Trigger() }

// ResizeOuter schedules a debounced reposition after the screen resized.
func (m *Manager) ResizeOuter() { m.resizeOuter.Trigger() }

func (m *Manager) pageScrolledBase() {
	m.repositionAll("pageScrolled", Controller.PageScrolled)
}

func (m *Manager) resizeOuterBase() {
	m.repositionAll("resizeOuter", Controller.ResizeOuter)
}

// WorkspaceResize repositions popups after the content area changed size.
func (m *Manager) WorkspaceResize() {
	m.repositionAll("workspaceResize", Controller.WorkspaceResize)
}

// OrientationChange recalculates positions once the new screen size has
// settled, then once more in case the first measurement was stale.
func (m *Manager) OrientationChange() {
	delay := m.delays.Orientation
	m.loop.AfterFunc(delay, func() {
		m.orientationChanged()
		m.loop.AfterFunc(delay*3, m.orientationChanged)
	})
}

func (m *Manager) orientationChanged() {
	changed := false
	for _, r := range append([]*Record(nil), m.items...) {
		if m.Find(r.ID) == r && r.Controller.OrientationChanged(r, m.container) {
			changed = true
		}
	}
	events.Popup.Signal("orientationChange", changed)
	if changed {
		m.redraw()
	}
}

// KeyboardVisibilityChange recalculates the popups that depend on the
// on-screen keyboard once it finished showing or hiding.
func (m *Manager) KeyboardVisibilityChange() {
	m.loop.AfterFunc(m.delays.Keyboard, func() {
		for _, r := range append([]*Record(nil), m.items...) {
			if r.Controller.NeedRecalcOnKeyboardShow() {
				r.Controller.ElementUpdated(r, m.container)
			}
		}
		events.Popup.Signal("keyboardVisibility", true)
		m.redraw()
	})
}

// PageDragNDrop reports a drag phase on the page. Bursts are throttled so the
// controllers see the final phase only; target decides whether the drag
// happens inside a popup.
func (m *Manager) PageDragNDrop(phase DragPhase, target Node) {
	inside, _ := enclosingPopup(target)
	m.dragGen++
	gen := m.dragGen
	if m.dragTimer != nil {
		m.dragTimer.Stop()
	}
	m.dragTimer = m.loop.AfterFunc(m.delays.DragThrottle, func() {
		if gen != m.dragGen {
			return
		}
		m.dragTimer = nil
		for _, r := range append([]*Record(nil), m.items...) {
			isInside := inside != "" && inside == r.ID
			if r.Controller.DragNDropOnPage(r, m.container, isInside, phase) {
				m.Remove(r.ID)
			}
		}
		events.Popup.Signal("dragNDrop:"+string(phase), true)
		m.redraw()
	})
}

func (m *Manager) repositionAll(name string, hook positionHook) bool {
	changed := false
	for _, r := range append([]*Record(nil), m.items...) {
		if hook(r.Controller, r, m.container) {
			changed = true
		}
	}
	events.Popup.Signal(name, changed)
	if changed {
		m.redraw()
	}
	return changed
}
