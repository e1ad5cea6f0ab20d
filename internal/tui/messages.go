package tui

import (
	"github.com/jask/bookkeep/internal/model"
	"github.com/jask/bookkeep/internal/nav"
	"github.com/jask/bookkeep/internal/render"
)

// Loads carry the generation they were started in; results from an older
// generation are dropped.
type tableMsg struct {
	gen   uint64
	table render.Table
}

type loadFailedMsg struct {
	gen uint64
	err error
}

type detailMsg struct {
	gen    uint64
	id     string
	detail render.Detail
	err    error
}

type formMsg struct {
	gen  uint64
	form *render.Form
	err  error
}

type billsMsg struct {
	gen      uint64
	vendorID string
	bills    []model.Expense
	err      error
}

type syncMsg struct {
	gen   uint64
	panel render.SyncPanel
}

type reloadMsg struct{ gen uint64 }

type savedMsg struct {
	view   nav.View
	status string
}

type saveFailedMsg struct{ err error }

type deletedMsg struct{}

type deleteFailedMsg struct{ err error }

type alertMsg struct{ title, message string }

type pushDoneMsg struct{ err error }

type frequencySavedMsg struct{ err error }

type pulledMsg struct{ err error }
