package popup

import "reflect"

// Dispatch routes an event from the container or a mounted host. Handlers
// returning true trigger one redraw.
func (m *Manager) Dispatch(evt interface{}) {
	if evt == nil {
		return
	}
	h, ok := m.handlers[reflect.TypeOf(evt)]
	if !ok {
		return
	}
	if h(evt) {
		m.redraw()
	}
}

func (m *Manager) registerHandlers() {
	m.handlers = map[reflect.Type]eventHandler{
		reflect.TypeOf(BeforePaintOnMount{}): m.handleBeforePaintOnMount,
		reflect.TypeOf(PopupCreated{}):       m.handlePopupCreated,
		reflect.TypeOf(PopupUpdated{}):       m.handlePopupUpdated,
		reflect.TypeOf(PopupAfterUpdated{}):  m.handlePopupAfterUpdated,
		reflect.TypeOf(PopupMovingSize{}):    m.handlePopupMovingSize,
		reflect.TypeOf(PopupMaximized{}):     m.handlePopupMaximized,
		reflect.TypeOf(PopupDragStart{}):     m.handlePopupDragStart,
		reflect.TypeOf(PopupDragEnd{}):       m.handlePopupDragEnd,
		reflect.TypeOf(PopupMouseEnter{}):    m.handlePopupMouseEnter,
		reflect.TypeOf(PopupMouseLeave{}):    m.handlePopupMouseLeave,
		reflect.TypeOf(PopupResizeInner{}):   m.handlePopupResizeInner,
		reflect.TypeOf(PopupResult{}):        m.handlePopupResult,
		reflect.TypeOf(PopupClose{}):         m.handlePopupClose,
		reflect.TypeOf(PopupAnimated{}):      m.handlePopupAnimated,
		reflect.TypeOf(PopupActivated{}):     m.handlePopupActivated,
	}
}

func (m *Manager) handleBeforePaintOnMount(evt interface{}) bool {
	if r := m.Find(evt.(BeforePaintOnMount).ID); r != nil {
		m.notify(EventPopupCreated, r)
	}
	return false
}

func (m *Manager) handlePopupCreated(evt interface{}) bool {
	r := m.Find(evt.(PopupCreated).ID)
	if r == nil {
		return false
	}
	m.fire(r.Options, "onOpen", r.Options.Handlers.OnOpen)
	return r.Controller.ElementCreated(r, m.container)
}

func (m *Manager) handlePopupUpdated(evt interface{}) bool {
	r := m.Find(evt.(PopupUpdated).ID)
	if r == nil {
		return false
	}
	redraw := r.Controller.ElementUpdated(r, m.container)
	m.notify(EventPopupUpdated, r)
	return redraw
}

func (m *Manager) handlePopupAfterUpdated(evt interface{}) bool {
	r := m.Find(evt.(PopupAfterUpdated).ID)
	if r == nil {
		return false
	}
	return r.Controller.ElementAfterUpdated(r, m.container)
}

func (m *Manager) handlePopupMovingSize(evt interface{}) bool {
	e := evt.(PopupMovingSize)
	r := m.Find(e.ID)
	if r == nil {
		return false
	}
	r.Controller.PopupMovingSize(r, e.Offset)
	m.notify(EventPopupUpdated, r)
	return true
}

func (m *Manager) handlePopupMaximized(evt interface{}) bool {
	e := evt.(PopupMaximized)
	r := m.Find(e.ID)
	if r == nil {
		return false
	}
	r.Controller.ElementMaximized(r, m.container, e.Maximized)
	m.notify(EventPopupMaximized, r)
	return true
}

func (m *Manager) handlePopupDragStart(evt interface{}) bool {
	e := evt.(PopupDragStart)
	r := m.Find(e.ID)
	if r == nil {
		return false
	}
	r.Controller.PopupDragStart(r, m.container, e.Offset)
	return true
}

func (m *Manager) handlePopupDragEnd(evt interface{}) bool {
	e := evt.(PopupDragEnd)
	r := m.Find(e.ID)
	if r == nil {
		return false
	}
	r.Controller.PopupDragEnd(r, e.Offset)
	return true
}

func (m *Manager) handlePopupMouseEnter(evt interface{}) bool {
	if r := m.Find(evt.(PopupMouseEnter).ID); r != nil {
		r.Controller.PopupMouseEnter(r, m.container)
	}
	return false
}

func (m *Manager) handlePopupMouseLeave(evt interface{}) bool {
	if r := m.Find(evt.(PopupMouseLeave).ID); r != nil {
		r.Controller.PopupMouseLeave(r, m.container)
	}
	return false
}

func (m *Manager) handlePopupResizeInner(evt interface{}) bool {
	r := m.Find(evt.(PopupResizeInner).ID)
	if r == nil {
		return false
	}
	// popups anchored to a hidden stack panel would lose their target
	if parent := m.Find(r.ParentID); parent != nil && parent.Position.Hidden {
		return false
	}
	return r.Controller.ResizeInner(r, m.container)
}

// handlePopupResult reads the options from the mounted host, so results
// sent while the popup is unmounting still reach the producer.
func (m *Manager) handlePopupResult(evt interface{}) bool {
	e := evt.(PopupResult)
	host, ok := m.container.Host(e.ID)
	if !ok {
		return false
	}
	opts := host.Options
	if fn := opts.Handlers.OnResult; fn != nil {
		m.fire(opts, "onResult", func(o Options) { fn(o, e.Args...) })
	}
	return false
}

func (m *Manager) handlePopupClose(evt interface{}) bool {
	r := m.Find(evt.(PopupClose).ID)
	if r == nil {
		return false
	}
	r.RemoveInitiator = RemoveInitiatorInner
	m.Remove(r.ID)
	return false
}

func (m *Manager) handlePopupAnimated(evt interface{}) bool {
	r := m.findItem(evt.(PopupAnimated).ID)
	if r == nil {
		return false
	}
	return r.Controller.ElementAnimated(r, m.container)
}

func (m *Manager) handlePopupActivated(interface{}) bool {
	return false
}

// PopupUpdated is the producer-side shortcut for Dispatch(PopupUpdated{id}).
func (m *Manager) PopupUpdated(id string) {
	m.Dispatch(PopupUpdated{ID: id})
}
