package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/popstack/internal/controller"
	"github.com/atomicstack/popstack/internal/future"
	"github.com/atomicstack/popstack/internal/logging/events"
	"github.com/atomicstack/popstack/internal/pending"
	"github.com/atomicstack/popstack/internal/popup"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.searching {
		return m.handleSearchKey(keyMsg)
	}
	events.UI.Key(keyMsg.String())
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m.quit()
	case key.Matches(keyMsg, m.keys.Dialog):
		m.openDialog()
	case key.Matches(keyMsg, m.keys.Stack):
		m.openStack()
	case key.Matches(keyMsg, m.keys.Sticky):
		m.openSticky()
	case key.Matches(keyMsg, m.keys.Notify):
		m.openNotification()
	case key.Matches(keyMsg, m.keys.Confirm):
		m.confirmFocused()
	case key.Matches(keyMsg, m.keys.Close):
		m.closeFocused()
	case key.Matches(keyMsg, m.keys.Back):
		m.manager.HistoryChange()
	case key.Matches(keyMsg, m.keys.Navigate):
		if !m.manager.Navigate(false) {
			m.setInfo("navigation blocked by pending work")
		}
	case key.Matches(keyMsg, m.keys.Work):
		m.startWork()
	case key.Matches(keyMsg, m.keys.Cancel):
		m.cancelClose()
	case key.Matches(keyMsg, m.keys.Maximize):
		m.toggleMaximize()
	case key.Matches(keyMsg, m.keys.Focus):
		m.cycleFocus()
	case key.Matches(keyMsg, m.keys.Search):
		m.searching = true
		m.search.SetValue("")
		return m.search.Focus()
	case key.Matches(keyMsg, m.keys.Status):
		m.showStatus = !m.showStatus
		m.manager.WorkspaceResize()
	}
	return nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.stopSearch()
		return nil
	case tea.KeyEnter:
		query := m.search.Value()
		m.stopSearch()
		results := m.hub.Search(query)
		if len(results) == 0 {
			m.setInfo(fmt.Sprintf("no popup matches %q", query))
			return nil
		}
		m.container.ActivatePopup(results[0].ID)
		m.setInfo("focused " + label(results[0]))
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return cmd
}

func (m *Model) stopSearch() {
	m.searching = false
	m.search.Blur()
}

// focusedNode is the node producers live in: the content of the focused
// popup, or the page.
func (m *Model) focusedNode() popup.Node {
	id, ok := m.container.Focused()
	if !ok {
		return nil
	}
	host, ok := m.container.Host(id)
	if !ok {
		return nil
	}
	return &popup.Element{Name: "content", Parent: host}
}

func (m *Model) popupHandlers() popup.Handlers {
	return popup.Handlers{
		OnClose: func(opts popup.Options) {
			m.setInfo("closed " + opts.Title)
		},
		OnResult: func(opts popup.Options, args ...interface{}) {
			m.setInfo(fmt.Sprintf("%s: %v", opts.Title, args))
		},
	}
}

func (m *Model) nextTitle(kind string) string {
	m.opened++
	return fmt.Sprintf("%s %d", kind, m.opened)
}

func (m *Model) openDialog() {
	m.hub.Show(popup.Options{
		Template:            "demo/dialog",
		Title:               m.nextTitle("Dialog"),
		Body:                "enter confirm, x close",
		Modal:               true,
		CloseOnOverlayClick: true,
		Opener:              m.focusedNode(),
		Handlers:            m.popupHandlers(),
	}, m.dialogs)
}

func (m *Model) openStack() {
	m.hub.Show(popup.Options{
		Template: "demo/stack",
		Title:    m.nextTitle("Panel"),
		Body:     "s opens another panel",
		Opener:   m.focusedNode(),
		Handlers: m.popupHandlers(),
	}, m.stacks)
}

func (m *Model) openSticky() {
	m.hub.Show(popup.Options{
		Template: "demo/sticky",
		Title:    m.nextTitle("Popover"),
		Body:     "click outside to close",
		Opener:   m.focusedNode(),
		Data: map[string]interface{}{
			controller.AnchorX: m.mouseX,
			controller.AnchorY: m.mouseY,
		},
		Handlers: m.popupHandlers(),
	}, m.stickies)
}

func (m *Model) openNotification() {
	m.hub.Show(popup.Options{
		Template: "demo/notification",
		Title:    m.nextTitle("Notice"),
		Body:     "notifications survive navigation",
		Handlers: m.popupHandlers(),
	}, m.notifications)
}

func (m *Model) closeFocused() {
	id, ok := m.container.Focused()
	if !ok {
		m.setInfo("no popup focused")
		return
	}
	m.hub.Notify(popup.PopupClose{ID: id})
	m.hub.Remove(id).Catch(func(err error) {
		m.setError(err)
	})
}

func (m *Model) confirmFocused() {
	id, ok := m.container.Focused()
	if !ok {
		return
	}
	m.hub.Notify(popup.PopupResult{ID: id, Args: []interface{}{"confirmed"}})
	m.hub.Notify(popup.PopupClose{ID: id})
}

// startWork registers a pending operation on the focused popup that settles
// after the configured work duration. Closing the popup waits for it.
func (m *Model) startWork() {
	id, ok := m.container.Focused()
	if !ok {
		m.setInfo("no popup focused")
		return
	}
	op, resolve, _ := future.New[future.Void](m.loop)
	m.loop.AfterFunc(m.workDuration, func() { resolve(future.Void{}) })
	m.container.RegisterPending(id, op, pending.Config{
		OnPendingFail: func(bool) {
			m.setInfo(fmt.Sprintf("waiting for work in %s (c cancels)", id))
		},
		Validate: func() bool { return !op.Settled() },
	})
	op.Then(func(future.Void) { events.UI.Work(id, "done") })
	events.UI.Work(id, "start")
	m.setInfo("work started in " + id)
}

func (m *Model) cancelClose() {
	id, ok := m.container.Focused()
	if !ok {
		return
	}
	if p := m.container.Pending(); p == nil || !p.IsFinishing(id) {
		m.setInfo("nothing to cancel")
		return
	}
	m.container.CancelFinishingPending(id)
}

func (m *Model) toggleMaximize() {
	id, ok := m.container.Focused()
	if !ok {
		return
	}
	r := m.hub.Find(id)
	if r == nil {
		return
	}
	m.hub.Notify(popup.PopupMaximized{ID: id, Maximized: !r.Options.Maximize})
}

func (m *Model) cycleFocus() {
	var ids []string
	for _, h := range m.container.Hosts() {
		if !h.Position.Hidden && !h.Options.NoAutofocus {
			ids = append(ids, h.ID)
		}
	}
	if len(ids) == 0 {
		return
	}
	current, _ := m.container.Focused()
	next := ids[0]
	for i, id := range ids {
		if id == current {
			next = ids[(i+1)%len(ids)]
			break
		}
	}
	m.container.ActivatePopup(next)
}

func label(r popup.Record) string {
	if r.Options.Title != "" {
		return r.Options.Title
	}
	return r.ID
}
