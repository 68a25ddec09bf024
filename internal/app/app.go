package app

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/popstack/internal/popup"
	"github.com/atomicstack/popstack/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	Theme         string
	HeaderTheme   string
	StackPosition string
	Delays        popup.Delays
	NotifyTimeout time.Duration
	WorkDuration  time.Duration
	Width         int
	Height        int
	ShowStatus    bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	model := ui.NewModel(ui.Options{
		Theme:         cfg.Theme,
		HeaderTheme:   cfg.HeaderTheme,
		StackPosition: cfg.StackPosition,
		Delays:        cfg.Delays,
		NotifyTimeout: cfg.NotifyTimeout,
		WorkDuration:  cfg.WorkDuration,
		Width:         cfg.Width,
		Height:        cfg.Height,
		ShowStatus:    cfg.ShowStatus,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
