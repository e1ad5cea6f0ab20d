package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const colGap = 2

// RenderTable draws t with the cursor row highlighted, scrolled so the cursor
// stays visible within height lines (header included).
func RenderTable(t Table, cursor, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(t.Rows) == 0 {
		empty := t.Empty
		if empty == "" {
			empty = "No records found."
		}
		return headerLine(t.Columns, columnWidths(t, width)) + "\n" + mutedStyle.Render(empty)
	}

	widths := columnWidths(t, width)
	lines := []string{headerLine(t.Columns, widths)}

	visible := max(1, height-1)
	first := 0
	if cursor >= visible {
		first = cursor - visible + 1
	}
	last := min(len(t.Rows), first+visible)
	for i := first; i < last; i++ {
		lines = append(lines, rowLine(t, t.Rows[i], widths, i == cursor, width))
	}
	return strings.Join(lines, "\n")
}

func headerLine(cols []string, widths []int) string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		cells[i] = padRight(truncate(strings.ToUpper(c), widths[i]), widths[i])
	}
	return "  " + headerStyle.Render(strings.Join(cells, strings.Repeat(" ", colGap)))
}

func rowLine(t Table, r Row, widths []int, selected bool, width int) string {
	cells := make([]string, len(widths))
	for i := range widths {
		text := ""
		if i < len(r.Cells) {
			text = truncate(r.Cells[i], widths[i])
		}
		cell := padRight(text, widths[i])
		if i == t.StatusColumn && !selected {
			cell = Badge(text) + strings.Repeat(" ", max(0, widths[i]-ansi.StringWidth(text)))
		}
		cells[i] = cell
	}
	line := strings.Join(cells, strings.Repeat(" ", colGap))
	if selected {
		return selectedStyle.Render(padRight("▶ "+line, width))
	}
	return "  " + line
}

// columnWidths sizes each column to its widest cell, then shrinks the widest
// columns until the table fits.
func columnWidths(t Table, width int) []int {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = ansi.StringWidth(c)
	}
	for _, r := range t.Rows {
		for i := range widths {
			if i < len(r.Cells) {
				widths[i] = max(widths[i], ansi.StringWidth(r.Cells[i]))
			}
		}
	}
	avail := width - 2 - colGap*max(0, len(widths)-1)
	for sum(widths) > avail {
		widest := 0
		for i := range widths {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= 4 {
			break
		}
		widths[widest]--
	}
	return widths
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
