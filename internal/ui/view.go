package ui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/popstack/internal/theme"
)

var pageText = []string{
	"popstack",
	"",
	"Open dialogs, stack panels, popovers and notifications with the keys",
	"below. Popups opened while another one is focused become its children",
	"and close before it. Press w inside a popup to start work that blocks",
	"closing until it finishes.",
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	lines := []string{m.container.View(m.pageView()), m.messageLine(), m.footer()}
	return strings.Join(lines, "\n")
}

func (m *Model) pageView() string {
	lines := make([]string, 0, len(pageText)+8)
	for i, line := range pageText {
		style := m.styles.Page
		if i == 0 {
			style = m.styles.StatusHeader
		}
		lines = append(lines, style.Render(line))
	}
	if m.showStatus {
		lines = append(lines, "", m.container.Status())
	}
	lines = append(lines, "", m.styles.Footer.Render("themes: "+strings.Join(theme.Names(), ", ")))
	return strings.Join(lines, "\n")
}

func (m *Model) messageLine() string {
	switch {
	case m.searching:
		line := m.search.View()
		if matches := m.hub.Search(m.search.Value()); len(matches) > 0 && m.search.Value() != "" {
			names := make([]string, 0, 3)
			for i, r := range matches {
				if i == 3 {
					break
				}
				names = append(names, label(r))
			}
			line += "  " + m.styles.Footer.Render(fmt.Sprintf("[%s]", strings.Join(names, ", ")))
		}
		return m.fit(line)
	case m.errMsg != "":
		return m.styles.Error.Render(m.fit(m.errMsg))
	case m.infoMsg != "":
		return m.styles.Footer.Render(m.fit(m.infoMsg))
	}
	return ""
}

func (m *Model) footer() string {
	return m.styles.Footer.Render(m.help.View(m.keys))
}

func (m *Model) fit(text string) string {
	if m.width <= 0 {
		return text
	}
	return truncate.StringWithTail(text, uint(m.width), "…")
}
