package render

import (
	"strings"
)

const maxOptions = 6

// RenderForm draws an edit form. The focused select lists its matching
// options below the field.
func RenderForm(f *Form, width int) string {
	inner := max(20, width-4)
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.Title) + "\n")

	for i := range f.Fields {
		fld := &f.Fields[i]
		focused := i == f.Focus
		b.WriteString("\n" + fieldLabel(fld.Label, focused, fld.Disabled) + "\n")
		b.WriteString(fieldBox(fld, focused, inner) + "\n")
		if focused && fld.Kind == FieldSelect && !fld.Disabled {
			b.WriteString(optionList(fld, inner))
		}
	}
	b.WriteString("\n" + mutedStyle.Render("[tab] Next  [shift+tab] Prev  [ctrl+s] Save  [esc] Cancel"))
	return panelStyle.Width(width - 2).Render(b.String())
}

func fieldLabel(label string, focused, disabled bool) string {
	switch {
	case disabled:
		return mutedStyle.Render(label)
	case focused:
		return focusStyle.Render("› " + label)
	}
	return labelStyle.Render(label)
}

func fieldBox(f *Field, focused bool, width int) string {
	text := f.Display()
	if f.Kind == FieldSelect && focused && f.Query != "" {
		text = f.Query
	}
	if text == "" {
		placeholder := f.Placeholder
		if placeholder == "" && f.Kind == FieldSelect {
			placeholder = "-- Choose --"
		}
		text = mutedStyle.Render(placeholder)
	}
	if focused && !f.Disabled {
		text += focusStyle.Render("▏")
	}
	box := "  " + truncate(text, width-2)
	if focused {
		return selectedStyle.Render(padRight(box, width))
	}
	return box
}

func optionList(f *Field, width int) string {
	opts := f.Filtered()
	if len(opts) == 0 {
		return mutedStyle.Render("    no matches") + "\n"
	}
	var b strings.Builder
	for i, o := range opts {
		if i == maxOptions {
			b.WriteString(mutedStyle.Render("    …") + "\n")
			break
		}
		marker := "    "
		style := labelStyle
		if o.Value == f.Value {
			marker = "  ● "
			style = focusStyle
		}
		b.WriteString(style.Render(truncate(marker+o.Label, width)) + "\n")
	}
	return b.String()
}
