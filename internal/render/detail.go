package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderDetail draws the side panel for one record.
func RenderDetail(d Detail, width int) string {
	inner := max(10, width-4)
	var b strings.Builder
	b.WriteString(titleStyle.Render(truncate(d.Title, inner)))
	if d.ID != "" {
		b.WriteString("\n" + mutedStyle.Render(d.ID))
	}
	b.WriteString("\n")

	labelWidth := 0
	for _, f := range d.Fields {
		labelWidth = max(labelWidth, lipgloss.Width(f.Label))
	}
	for _, f := range d.Fields {
		b.WriteString("\n" + pairLine(f, labelWidth, inner))
	}

	for _, s := range d.Sections {
		b.WriteString("\n\n" + headerStyle.Render(strings.ToUpper(s.Title)))
		if len(s.Items) == 0 {
			empty := s.Empty
			if empty == "" {
				empty = "Nothing here yet."
			}
			b.WriteString("\n" + mutedStyle.Render(empty))
			continue
		}
		w := 0
		for _, it := range s.Items {
			w = max(w, lipgloss.Width(it.Label))
		}
		for _, it := range s.Items {
			b.WriteString("\n" + pairLine(it, w, inner))
		}
	}

	var actions []string
	if d.CanEdit {
		actions = append(actions, "[e] Edit")
	}
	if d.CanDelete {
		actions = append(actions, "[x] Delete")
	}
	for _, a := range d.Actions {
		actions = append(actions, "["+a.Key+"] "+a.Label)
	}
	actions = append(actions, "[esc] Close")
	b.WriteString("\n\n" + actionStyle.Render(strings.Join(actions, "  ")))

	return panelStyle.Width(width - 2).Render(b.String())
}

func pairLine(p Pair, labelWidth, width int) string {
	label := labelStyle.Render(padRight(p.Label, labelWidth))
	value := truncate(p.Value, max(1, width-labelWidth-2))
	return label + "  " + p.Tone.style().Render(value)
}
