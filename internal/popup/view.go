package popup

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/popstack/internal/format/table"
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// View composites the mounted popups over base in stacking order. The page
// and every popup below the overlay owner are dimmed.
func (c *Container) View(base string) string {
	if c.width <= 0 || c.height <= 0 {
		return base
	}
	lines := canvas(base, c.width, c.height)
	owner, hasOverlay := c.OverlayID()
	focused, _ := c.Focused()
	for _, h := range c.Hosts() {
		if h.Position.Hidden {
			continue
		}
		if hasOverlay && h.ID == owner {
			for i, line := range lines {
				lines[i] = c.styles.Backdrop.Render(ansi.Strip(line))
			}
		}
		box := c.renderHost(h, h.ID == focused)
		overlayAt(lines, strings.Split(box, "\n"), c.width, h.Position.X, h.Position.Y)
	}
	return strings.Join(lines, "\n")
}

// HitTest returns the node under the cell at x, y: a mounted popup, the
// backdrop of the overlay owner, or nil for the bare page.
func (c *Container) HitTest(x, y int) Node {
	owner, hasOverlay := c.OverlayID()
	hosts := c.Hosts()
	for i := len(hosts) - 1; i >= 0; i-- {
		h := hosts[i]
		if !h.Position.Hidden && c.bounds(h).contains(x, y) {
			return h
		}
		if hasOverlay && h.ID == owner {
			return Backdrop{Owner: owner}
		}
	}
	return nil
}

func (c *Container) bounds(h *Mounted) rect {
	r := rect{x: h.Position.X, y: h.Position.Y, w: h.Position.Width, h: h.Position.Height}
	if r.w <= 0 || r.h <= 0 {
		box := c.renderHost(h, false)
		r.w, r.h = lipgloss.Width(box), lipgloss.Height(box)
	}
	return r
}

func (c *Container) renderHost(h *Mounted, focused bool) string {
	frame := *c.styles.Frame
	if focused {
		frame = *c.styles.FocusedFrame
	}
	title := h.Options.Title
	if title == "" {
		title = h.Options.Template
	}
	if title == "" {
		title = h.ID
	}
	if w := h.Position.Width - frame.GetHorizontalFrameSize(); w > 0 {
		title = truncate.StringWithTail(title, uint(w), "…")
		frame = frame.Width(h.Position.Width - frame.GetHorizontalBorderSize())
	}
	if hh := h.Position.Height - frame.GetVerticalBorderSize(); hh > 0 {
		frame = frame.Height(hh).MaxHeight(h.Position.Height)
	}
	content := c.styles.Title.Render(title)
	if h.Options.Body != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, c.styles.Body.Render(h.Options.Body))
	}
	return frame.Render(content)
}

// Status renders one row per popup in the current snapshot.
func (c *Container) Status() string {
	if len(c.items) == 0 {
		return c.styles.Status.Render("no popups")
	}
	cols := []table.Column{
		{Header: "ID", MaxWidth: 24},
		{Header: "KIND"},
		{Header: "Z", Align: table.AlignRight},
		{Header: "STATE"},
		{Header: "PARENT", MaxWidth: 24},
	}
	rows := make([][]string, 0, len(c.items))
	for _, item := range c.items {
		kind := ""
		if item.Controller != nil {
			kind = string(item.Controller.Kind())
		}
		rows = append(rows, []string{item.ID, kind, strconv.Itoa(item.CurrentZIndex), string(item.State), item.ParentID})
	}
	header, lines := table.Format(cols, rows)
	out := make([]string, 0, len(lines)+1)
	out = append(out, c.styles.StatusHeader.Render(header))
	for _, line := range lines {
		out = append(out, c.styles.Status.Render(line))
	}
	return strings.Join(out, "\n")
}

func canvas(base string, width, height int) []string {
	lines := strings.Split(base, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w < width {
			lines[i] = line + strings.Repeat(" ", width-w)
		} else if w > width {
			lines[i] = ansi.Cut(line, 0, width)
		}
	}
	return lines
}

func overlayAt(bg, fg []string, width, x, y int) {
	fgW := 0
	for _, line := range fg {
		if w := ansi.StringWidth(line); w > fgW {
			fgW = w
		}
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x+fgW > width {
		fgW = width - x
	}
	if fgW <= 0 {
		return
	}
	for i := 0; i < len(fg) && y+i < len(bg); i++ {
		line := bg[y+i]
		left := ansi.Cut(line, 0, x)
		right := ansi.Cut(line, x+fgW, width)
		cell := fg[i]
		if w := ansi.StringWidth(cell); w < fgW {
			cell += strings.Repeat(" ", fgW-w)
		} else if w > fgW {
			cell = ansi.Cut(cell, 0, fgW)
		}
		bg[y+i] = left + cell + right
	}
}
