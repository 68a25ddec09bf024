package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Dialog   key.Binding
	Stack    key.Binding
	Sticky   key.Binding
	Notify   key.Binding
	Confirm  key.Binding
	Close    key.Binding
	Back     key.Binding
	Navigate key.Binding
	Work     key.Binding
	Cancel   key.Binding
	Maximize key.Binding
	Focus    key.Binding
	Search   key.Binding
	Status   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Dialog:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dialog")),
		Stack:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stack")),
		Sticky:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "popover")),
		Notify:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notify")),
		Confirm:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Close:    key.NewBinding(key.WithKeys("x", "esc"), key.WithHelp("x", "close")),
		Back:     key.NewBinding(key.WithKeys("b", "backspace"), key.WithHelp("b", "back")),
		Navigate: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "navigate")),
		Work:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "work")),
		Cancel:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cancel close")),
		Maximize: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "maximize")),
		Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Status:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "status")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Dialog, k.Stack, k.Sticky, k.Notify, k.Close, k.Back, k.Search, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Dialog, k.Stack, k.Sticky, k.Notify},
		{k.Confirm, k.Close, k.Back, k.Navigate},
		{k.Work, k.Cancel, k.Maximize, k.Focus},
		{k.Search, k.Status, k.Quit},
	}
}
