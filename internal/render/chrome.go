package render

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// Tab is one entry of the navigation bar.
type Tab struct {
	Key    string
	Label  string
	Active bool
}

// Chrome is the frame around every screen.
type Chrome struct {
	Title   string
	Action  string
	Tabs    []Tab
	Status  string
	IsError bool
	Busy    string
	Keys    []key.Binding
}

// Header draws the tab bar and the page title with its action hint.
func Header(c Chrome, width int) string {
	tabs := make([]string, len(c.Tabs))
	for i, t := range c.Tabs {
		label := " " + t.Key + " " + t.Label + " "
		if t.Active {
			tabs[i] = selectedStyle.Render(label)
		} else {
			tabs[i] = mutedStyle.Render(label)
		}
	}
	bar := truncate(strings.Join(tabs, " "), width)

	title := titleStyle.Render(c.Title)
	if c.Action != "" {
		hint := actionStyle.Render("[n] " + c.Action)
		gap := width - lipgloss.Width(title) - lipgloss.Width(hint)
		if gap > 0 {
			title += strings.Repeat(" ", gap) + hint
		} else {
			title += "  " + hint
		}
	}
	return bar + "\n\n" + title
}

// Footer draws the status line and key help.
func Footer(c Chrome, width int) string {
	h := help.New()
	h.Width = width
	line := h.ShortHelpView(c.Keys)

	status := ""
	switch {
	case c.Busy != "":
		status = infoStyle.Render(c.Busy)
	case c.IsError && c.Status != "":
		status = errorStyle.Render(c.Status)
	case c.Status != "":
		status = infoStyle.Render(c.Status)
	}
	if status == "" {
		return line
	}
	return truncate(status, width) + "\n" + line
}
