package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/popstack/internal/loop"
)

// Harness drives the UI model programmatically for integration tests.
type Harness struct {
	model *Model
	sched *loop.ManualScheduler
}

// NewHarness creates a harness for the provided model. Models built with a
// loop.ManualScheduler can be advanced in time through the harness.
func NewHarness(model *Model) *Harness {
	h := &Harness{model: model}
	if model != nil {
		h.sched, _ = model.sched.(*loop.ManualScheduler)
	}
	return h
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// Keys sends each string as a key press.
func (h *Harness) Keys(keys ...string) {
	for _, k := range keys {
		h.Send(keyMsg(k))
	}
}

// Click sends a left button press and release at x, y.
func (h *Harness) Click(x, y int) {
	h.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	h.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
}

// Advance moves the manual clock forward and delivers the resulting loop
// work.
func (h *Harness) Advance(d time.Duration) {
	if h.sched == nil {
		return
	}
	h.sched.Advance(d)
	h.Send(loopWakeMsg{})
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		if _, quit := msg.(tea.QuitMsg); quit {
			return
		}
		mdl, next := h.model.Update(msg)
		if updated, ok := mdl.(*Model); ok {
			h.model = updated
		}
		cmd = next
	}
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}
