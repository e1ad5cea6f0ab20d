// Package render turns controller view models into terminal text.
package render

import (
	"context"
	"strings"

	"github.com/jask/bookkeep/internal/lookup"
)

// Table is a list screen.
type Table struct {
	Columns []string
	Rows    []Row
	// StatusColumn is the index of a column rendered as a status badge, or -1.
	StatusColumn int
	Empty        string
}

// Row is one record in a Table.
type Row struct {
	ID    string
	Cells []string
}

// Pair is a labelled value.
type Pair struct {
	Label string
	Value string
	Tone  Tone
}

// Section is a titled list inside a detail panel.
type Section struct {
	Title string
	Items []Pair
	Empty string
}

// Action is an extra key offered by a detail panel.
type Action struct {
	Key   string
	Label string
}

// Detail is the side panel for one record.
type Detail struct {
	ID        string
	Title     string
	Fields    []Pair
	Sections  []Section
	CanEdit   bool
	CanDelete bool
	Actions   []Action
}

// FieldKind selects how a form field is edited.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumber
	FieldSelect
	FieldDate
)

// Field is one input of a Form.
type Field struct {
	Key         string
	Label       string
	Kind        FieldKind
	Value       string
	Options     []lookup.Option
	Placeholder string
	Disabled    bool

	// Query filters Options while a select is focused.
	Query string
}

// Filtered returns the options matching the current query.
func (f *Field) Filtered() []lookup.Option {
	return lookup.Match(f.Query, f.Options)
}

// Display is the text shown for the field's value.
func (f *Field) Display() string {
	if f.Kind != FieldSelect {
		return f.Value
	}
	for _, o := range f.Options {
		if o.Value == f.Value {
			return o.Label
		}
	}
	return ""
}

// Form is an edit screen. Save receives the form after the user confirms;
// an error keeps the form open and is shown in an alert.
type Form struct {
	Title  string
	Fields []Field
	Focus  int
	Save   func(ctx context.Context, f *Form) error
}

// Field returns the field with key, or nil.
func (f *Form) Field(key string) *Field {
	for i := range f.Fields {
		if f.Fields[i].Key == key {
			return &f.Fields[i]
		}
	}
	return nil
}

// Value returns the trimmed value of key.
func (f *Form) Value(key string) string {
	if fld := f.Field(key); fld != nil {
		return strings.TrimSpace(fld.Value)
	}
	return ""
}

// Set stores a value for key.
func (f *Form) Set(key, value string) {
	if fld := f.Field(key); fld != nil {
		fld.Value = value
	}
}

// Focused returns the focused field, or nil for an empty form.
func (f *Form) Focused() *Field {
	if f.Focus < 0 || f.Focus >= len(f.Fields) {
		return nil
	}
	return &f.Fields[f.Focus]
}

// Move shifts focus by delta, skipping disabled fields and wrapping.
func (f *Form) Move(delta int) {
	n := len(f.Fields)
	if n == 0 {
		return
	}
	for step := 0; step < n; step++ {
		f.Focus = ((f.Focus+delta)%n + n) % n
		if !f.Fields[f.Focus].Disabled {
			return
		}
	}
}
