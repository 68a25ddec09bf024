package popup

import "github.com/atomicstack/popstack/internal/logging/events"

// MouseDown handles a pointer press on target, which may be nil for presses
// outside any node.
func (m *Manager) MouseDown(target Node) {
	if isBackdrop(target) {
		m.overlayClick()
		return
	}
	if target != nil && inIsolatedArea(target) {
		return
	}
	m.closeOutside(target)
}

// HistoryChange treats back/forward navigation as a press outside every
// popup, starting with the overlay owner.
func (m *Manager) HistoryChange() {
	m.closeOverlayOwner()
	m.closeOutside(nil)
}

func isBackdrop(n Node) bool {
	switch n.(type) {
	case Backdrop, *Backdrop:
		return true
	}
	return false
}

func (m *Manager) overlayClick() {
	r := m.overlayOwner()
	if r == nil {
		return
	}
	events.Popup.OverlayClick(r.ID)
	if !r.Options.CloseOnOverlayClick {
		return
	}
	m.closeOverlayOwner()
}

func (m *Manager) overlayOwner() *Record {
	id, ok := m.container.OverlayID()
	if !ok {
		return nil
	}
	return m.Find(id)
}

func (m *Manager) closeOverlayOwner() {
	r := m.overlayOwner()
	if r != nil && !r.initializing() {
		r.Controller.CloseByOutsideClick(r)
	}
}

// closeOutside collects every record that agrees to close on outside
// presses and does not contain target, then closes them.
func (m *Manager) closeOutside(target Node) {
	var inside map[string]bool
	if target != nil {
		inside = ancestorPopups(target)
	}
	var closing []*Record
	for _, r := range m.items {
		if r.initializing() || !r.Controller.ClosesOnOutsideClick(r) {
			continue
		}
		if inside[r.ID] {
			continue
		}
		closing = append(closing, r)
	}
	if len(closing) == 0 {
		return
	}
	ids := make([]string, len(closing))
	for i, r := range closing {
		ids[i] = r.ID
	}
	events.Popup.OutsideClick(ids)
	for _, r := range closing {
		r.Controller.CloseByOutsideClick(r)
	}
}

// Navigate closes every top-level popup except notifications. It returns
// false when the navigation should be cancelled because a popup still has
// pending operations; icon clicks are never cancelled.
func (m *Manager) Navigate(isIconClick bool) bool {
	reg := m.container.Pending()
	hasPendings := false
	var closing []string
	for _, r := range append([]*Record(nil), m.items...) {
		if reg != nil && reg.HasRegistered(r.ID) {
			hasPendings = true
		}
		if r.ParentID == "" && r.Controller.Kind() != KindNotification {
			closing = append(closing, r.ID)
		}
	}
	for _, id := range closing {
		m.Remove(id)
	}
	vetoed := hasPendings && !isIconClick
	events.Popup.Navigate(closing, vetoed)
	return !vetoed
}
