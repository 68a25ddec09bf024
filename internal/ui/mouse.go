package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/popstack/internal/logging/events"
	"github.com/atomicstack/popstack/internal/popup"
)

// dragState follows a pointer drag. A drag that starts on a popup's top row
// moves the popup; one that starts on the page is reported as a page drag.
type dragState struct {
	id    string
	page  bool
	moved bool
	x, y  int
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if _, h := m.container.Size(); ev.Y >= h {
		return nil
	}
	m.mouseX, m.mouseY = ev.X, ev.Y
	switch {
	case ev.Button == tea.MouseButtonWheelUp || ev.Button == tea.MouseButtonWheelDown:
		m.manager.PageScrolled()
	case ev.Action == tea.MouseActionPress && ev.Button == tea.MouseButtonLeft:
		m.press(ev.X, ev.Y)
	case ev.Action == tea.MouseActionMotion && ev.Button == tea.MouseButtonLeft:
		m.motion(ev.X, ev.Y)
	case ev.Action == tea.MouseActionRelease:
		m.release(ev.X, ev.Y)
	}
	return nil
}

func (m *Model) press(x, y int) {
	target := m.container.HitTest(x, y)
	events.UI.Press(x, y, describe(target))
	m.manager.MouseDown(target)
	m.drag = dragState{x: x, y: y}
	switch node := target.(type) {
	case *popup.Mounted:
		m.container.ActivatePopup(node.ID)
		if y == node.Position.Y {
			m.drag.id = node.ID
		}
	case nil:
		m.drag.page = true
	}
}

func (m *Model) motion(x, y int) {
	off := popup.Offset{X: x - m.drag.x, Y: y - m.drag.y}
	switch {
	case m.drag.id != "":
		m.hub.Notify(popup.PopupDragStart{ID: m.drag.id, Offset: off})
	case m.drag.page && !m.drag.moved:
		m.manager.PageDragNDrop(popup.DragStart, nil)
	}
	m.drag.moved = true
}

func (m *Model) release(x, y int) {
	off := popup.Offset{X: x - m.drag.x, Y: y - m.drag.y}
	switch {
	case m.drag.id != "":
		m.hub.Notify(popup.PopupDragEnd{ID: m.drag.id, Offset: off})
	case m.drag.page && m.drag.moved:
		m.manager.PageDragNDrop(popup.DragEnd, m.container.HitTest(x, y))
	}
	m.drag = dragState{}
}

func describe(n popup.Node) string {
	switch node := n.(type) {
	case nil:
		return "page"
	case *popup.Mounted:
		return node.ID
	case popup.Backdrop:
		return "backdrop:" + node.Owner
	}
	return "node"
}
