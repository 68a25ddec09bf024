package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column describes one column of a table. MaxWidth of zero leaves the column
// unbounded.
type Column struct {
	Header   string
	Align    Alignment
	MaxWidth int
}

// Format pads the header and rows according to the widest entry in each
// column. Cells wider than MaxWidth are truncated with an ellipsis.
func Format(columns []Column, rows [][]string) (string, []string) {
	if len(columns) == 0 {
		return "", nil
	}
	widths := make([]int, len(columns))
	for c, col := range columns {
		widths[c] = cellWidth(col.Header)
	}
	clipped := make([][]string, len(rows))
	for i, row := range rows {
		clipped[i] = make([]string, len(columns))
		for c := range columns {
			if c >= len(row) {
				continue
			}
			cell := row[c]
			if limit := columns[c].MaxWidth; limit > 0 && cellWidth(cell) > limit {
				cell = truncate.StringWithTail(cell, uint(limit), "…")
			}
			clipped[i][c] = cell
			if w := cellWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}

	headers := make([]string, len(columns))
	for c, col := range columns {
		headers[c] = col.Header
	}
	header := formatRow(columns, widths, headers)
	out := make([]string, len(clipped))
	for i, row := range clipped {
		out[i] = formatRow(columns, widths, row)
	}
	return header, out
}

func formatRow(columns []Column, widths []int, row []string) string {
	var b strings.Builder
	for c, cell := range row {
		if c > 0 {
			b.WriteString("  ")
		}
		pad := widths[c] - cellWidth(cell)
		if columns[c].Align == AlignRight {
			writeSpaces(&b, pad)
			b.WriteString(cell)
		} else {
			b.WriteString(cell)
			if c < len(row)-1 {
				writeSpaces(&b, pad)
			}
		}
	}
	return b.String()
}

func cellWidth(text string) int {
	return ansi.StringWidth(text)
}

func writeSpaces(b *strings.Builder, count int) {
	if count <= 0 {
		return
	}
	b.WriteString(strings.Repeat(" ", count))
}
