package render

import "strings"

// ModalKind distinguishes confirmations from plain alerts.
type ModalKind int

const (
	ModalAlert ModalKind = iota
	ModalConfirm
)

// Modal is a dialog drawn over the current screen.
type Modal struct {
	Kind    ModalKind
	Title   string
	Message string
}

// Confirm asks before a destructive action.
func Confirm(title, message string) *Modal {
	return &Modal{Kind: ModalConfirm, Title: title, Message: message}
}

// Alert reports a failure or notice.
func Alert(title, message string) *Modal {
	return &Modal{Kind: ModalAlert, Title: title, Message: message}
}

// DeleteConfirm is the standard delete prompt.
func DeleteConfirm() *Modal {
	return Confirm("Are you sure?", "This action cannot be undone. This will permanently delete the record.")
}

// RenderModal draws m centred over base.
func RenderModal(base string, m *Modal, width, height int) string {
	if m == nil {
		return base
	}
	inner := max(20, min(56, width-10))
	var b strings.Builder
	title := titleStyle
	if m.Kind == ModalAlert {
		title = errorStyle
	}
	b.WriteString(title.Render(m.Title) + "\n\n")
	b.WriteString(wrap(m.Message, inner) + "\n\n")
	if m.Kind == ModalConfirm {
		b.WriteString(actionStyle.Render("[y] Confirm") + "  " + mutedStyle.Render("[n] Cancel"))
	} else {
		b.WriteString(mutedStyle.Render("[enter] OK"))
	}
	return Popup(base, b.String(), width, height)
}

func wrap(s string, width int) string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		line := ""
		for _, w := range strings.Fields(para) {
			switch {
			case line == "":
				line = w
			case len([]rune(line))+1+len([]rune(w)) > width:
				lines = append(lines, line)
				line = w
			default:
				line += " " + w
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
