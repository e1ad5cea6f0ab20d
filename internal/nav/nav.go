// Package nav holds the application state: which screen is active, which
// record is selected and the generation used to discard stale loads.
package nav

// View is a top-level screen.
type View string

const (
	Expenses View = "expenses"
	Payments View = "payments"
	Vendors  View = "vendors"
	Wallets  View = "wallets"
	Settings View = "settings"
)

// Views lists the screens in tab order.
var Views = []View{Expenses, Payments, Vendors, Wallets, Settings}

// Chrome is the page title and main action label of a screen.
type Chrome struct {
	Title  string
	Action string
}

var chrome = map[View]Chrome{
	Expenses: {Title: "Manage Expenses", Action: "New Expense"},
	Payments: {Title: "Payment History", Action: "Record Payment"},
	Vendors:  {Title: "Manage Vendors", Action: "Add Vendor"},
	Wallets:  {Title: "My Wallets", Action: "Add Wallet"},
	Settings: {Title: "Sync Settings"},
}

// ChromeFor returns the title and action of v. Settings has no action.
func ChromeFor(v View) Chrome { return chrome[v] }

// Label is the short tab name.
func (v View) Label() string {
	switch v {
	case Expenses:
		return "Expenses"
	case Payments:
		return "Payments"
	case Vendors:
		return "Vendors"
	case Wallets:
		return "Wallets"
	case Settings:
		return "Settings"
	}
	return string(v)
}

// Parse maps a view name to a View.
func Parse(s string) (View, bool) {
	for _, v := range Views {
		if string(v) == s {
			return v, true
		}
	}
	return "", false
}

// Panel is what is open beside or over the list.
type Panel int

const (
	PanelNone Panel = iota
	PanelDetail
	PanelForm
)

// State is the navigator. It is owned by the UI goroutine.
type State struct {
	view       View
	selectedID string
	panel      Panel
	generation uint64
}

// New starts on the expenses screen.
func New() *State {
	return &State{view: Expenses, generation: 1}
}

// Navigate activates v, clears the selection, closes any panel and starts a
// new generation. It returns that generation.
func (s *State) Navigate(v View) uint64 {
	s.view = v
	s.selectedID = ""
	s.panel = PanelNone
	s.generation++
	return s.generation
}

// Reload starts a new generation without leaving the view.
func (s *State) Reload() uint64 {
	s.generation++
	return s.generation
}

func (s *State) View() View { return s.view }

func (s *State) Chrome() Chrome { return ChromeFor(s.view) }

func (s *State) SelectedID() string { return s.selectedID }

func (s *State) Panel() Panel { return s.panel }

func (s *State) Generation() uint64 { return s.generation }

// Current reports whether a load started at generation g is still wanted.
func (s *State) Current(g uint64) bool { return g == s.generation }

// Select records the record a detail or delete acts on.
func (s *State) Select(id string) { s.selectedID = id }

// OpenDetail selects id and shows its detail panel.
func (s *State) OpenDetail(id string) {
	s.selectedID = id
	s.panel = PanelDetail
}

// OpenEdit selects id and opens the current view's form for it. An empty id
// opens a blank form.
func (s *State) OpenEdit(id string) {
	s.selectedID = id
	s.panel = PanelForm
}

// OpenNew opens a blank form.
func (s *State) OpenNew() { s.OpenEdit("") }

// Close hides the panel and keeps the selection.
func (s *State) Close() { s.panel = PanelNone }
