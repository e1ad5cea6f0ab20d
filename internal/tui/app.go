// Package tui is the bubbletea front-end: one list screen per view with a
// detail panel, edit forms, the transfer form and the sync settings screen.
package tui

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jask/bookkeep/internal/api"
	"github.com/jask/bookkeep/internal/controller"
	"github.com/jask/bookkeep/internal/nav"
	"github.com/jask/bookkeep/internal/render"
	"github.com/jask/bookkeep/internal/transfer"
)

// Controllers are the screens the app drives.
type Controllers struct {
	Expenses *controller.Expenses
	Payments *controller.Payments
	Vendors  *controller.Vendors
	Wallets  *controller.Wallets
	Settings *controller.Settings
}

// NewControllers builds every controller over deps.
func NewControllers(deps controller.Deps) Controllers {
	return Controllers{
		Expenses: &controller.Expenses{Deps: deps},
		Payments: &controller.Payments{Deps: deps},
		Vendors:  &controller.Vendors{Deps: deps},
		Wallets:  &controller.Wallets{Deps: deps},
		Settings: &controller.Settings{Deps: deps},
	}
}

const (
	pushReloadDelay  = 3 * time.Second
	deleteAlertDelay = 300 * time.Millisecond
)

// App is the root model.
type App struct {
	ctx   context.Context
	deps  controller.Deps
	ctl   Controllers
	state *nav.State
	keys  keyMap
	log   zerolog.Logger

	width  int
	height int

	table   render.Table
	cursor  int
	loading bool
	loadErr string

	detail   *render.Detail
	form     *render.Form
	transfer *render.TransferView
	saving   bool

	sync      render.SyncPanel
	freqInput string

	modal     *render.Modal
	onConfirm func() tea.Cmd

	status    string
	statusErr bool
	busy      string

	pushReload  time.Duration
	deleteAlert time.Duration
}

// New returns the app on the expenses screen.
func New(ctx context.Context, deps controller.Deps, ctl Controllers) *App {
	return &App{
		ctx:         ctx,
		deps:        deps,
		ctl:         ctl,
		state:       nav.New(),
		keys:        newKeyMap(),
		log:         deps.Log.With().Str("component", "tui").Logger(),
		loading:     true,
		pushReload:  pushReloadDelay,
		deleteAlert: deleteAlertDelay,
	}
}

// Start picks the screen Init loads first.
func (a *App) Start(v nav.View) {
	a.state.Navigate(v)
	if v == nav.Settings {
		a.sync = render.SyncPanel{Loading: true}
	}
}

// Init fills the lookup cache before the first list so names resolve.
func (a *App) Init() tea.Cmd {
	view, gen := a.state.View(), a.state.Generation()
	return func() tea.Msg {
		if a.deps.Cache != nil {
			if err := a.deps.Cache.Refresh(a.ctx); err != nil {
				a.log.Warn().Err(err).Msg("initial lookup load failed")
			}
		}
		return a.fetch(view, gen)
	}
}

func (a *App) screen(v nav.View) controller.Screen {
	switch v {
	case nav.Expenses:
		return a.ctl.Expenses
	case nav.Payments:
		return a.ctl.Payments
	case nav.Vendors:
		return a.ctl.Vendors
	case nav.Wallets:
		return a.ctl.Wallets
	}
	return nil
}

func (a *App) editor(v nav.View) (controller.Editor, bool) {
	switch v {
	case nav.Expenses:
		return a.ctl.Expenses, true
	case nav.Vendors:
		return a.ctl.Vendors, true
	case nav.Wallets:
		return a.ctl.Wallets, true
	}
	return nil, false
}

// fetch runs off the UI goroutine and must not touch App state.
func (a *App) fetch(view nav.View, gen uint64) tea.Msg {
	if view == nav.Settings {
		p, _ := a.ctl.Settings.Load(a.ctx)
		return syncMsg{gen: gen, panel: p}
	}
	t, err := a.screen(view).List(a.ctx)
	if err != nil {
		return loadFailedMsg{gen: gen, err: err}
	}
	return tableMsg{gen: gen, table: t}
}

func (a *App) loadCmd(view nav.View, gen uint64) tea.Cmd {
	return func() tea.Msg { return a.fetch(view, gen) }
}

func (a *App) navigate(v nav.View) tea.Cmd {
	gen := a.state.Navigate(v)
	a.closePanels()
	a.table = render.Table{}
	a.cursor = 0
	a.loading = true
	a.loadErr = ""
	if v == nav.Settings {
		a.sync = render.SyncPanel{Loading: true}
		a.freqInput = ""
	}
	return a.loadCmd(v, gen)
}

func (a *App) reload() tea.Cmd {
	gen := a.state.Reload()
	a.loading = true
	a.loadErr = ""
	return a.loadCmd(a.state.View(), gen)
}

func (a *App) closePanels() {
	a.state.Close()
	a.detail = nil
	a.form = nil
	a.transfer = nil
	a.saving = false
}

func (a *App) setStatus(s string, isErr bool) {
	a.status = s
	a.statusErr = isErr
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
	case tea.KeyMsg:
		return a.handleKey(m)

	case tableMsg:
		if !a.state.Current(m.gen) {
			return a, nil
		}
		a.table = m.table
		a.loading = false
		a.loadErr = ""
		if a.cursor >= len(a.table.Rows) {
			a.cursor = max(0, len(a.table.Rows)-1)
		}
	case loadFailedMsg:
		if !a.state.Current(m.gen) {
			return a, nil
		}
		a.loading = false
		a.loadErr = api.Message(m.err)
		a.log.Error().Err(m.err).Str("view", string(a.state.View())).Msg("list load failed")
	case syncMsg:
		if !a.state.Current(m.gen) || a.state.View() != nav.Settings {
			return a, nil
		}
		pushing := a.sync.Pushing
		a.sync = m.panel
		a.sync.Pushing = pushing
	case detailMsg:
		if !a.state.Current(m.gen) || a.state.Panel() != nav.PanelDetail || a.state.SelectedID() != m.id {
			return a, nil
		}
		if m.err != nil {
			a.state.Close()
			a.setStatus(api.Message(m.err), true)
			return a, nil
		}
		d := m.detail
		a.detail = &d
	case formMsg:
		if !a.state.Current(m.gen) || a.state.Panel() != nav.PanelForm {
			return a, nil
		}
		if m.err != nil {
			a.state.Close()
			a.setStatus(api.Message(m.err), true)
			return a, nil
		}
		a.form = m.form
		if f := a.form.Focused(); f != nil && f.Disabled {
			a.form.Move(1)
		}
	case billsMsg:
		if !a.state.Current(m.gen) || a.transfer == nil || a.transfer.Form.VendorID != m.vendorID {
			return a, nil
		}
		if m.err != nil {
			a.setStatus(api.Message(m.err), true)
			return a, nil
		}
		a.transfer.Form.LoadBills(m.vendorID, m.bills)

	case savedMsg:
		a.busy = ""
		a.setStatus(m.status, false)
		if m.view != a.state.View() {
			return a, a.navigate(m.view)
		}
		a.closePanels()
		return a, a.reload()
	case saveFailedMsg:
		a.busy = ""
		a.saving = false
		a.modal = render.Alert(alertTitle(m.err), api.Message(m.err))
	case deletedMsg:
		a.busy = ""
		a.closePanels()
		a.setStatus("Record deleted", false)
		return a, a.reload()
	case deleteFailedMsg:
		a.busy = ""
		text := api.Message(m.err)
		return a, tea.Tick(a.deleteAlert, func(time.Time) tea.Msg {
			return alertMsg{title: "Delete Failed", message: text}
		})
	case alertMsg:
		a.modal = render.Alert(m.title, m.message)
		a.onConfirm = nil

	case pushDoneMsg:
		a.busy = ""
		if m.err != nil {
			a.sync.Pushing = false
			a.setStatus("Failed to start sync: "+api.Message(m.err), true)
			return a, nil
		}
		// Push stays locked until the delayed reload.
		a.setStatus("Push Started", false)
		gen := a.state.Generation()
		return a, tea.Tick(a.pushReload, func(time.Time) tea.Msg { return reloadMsg{gen: gen} })
	case reloadMsg:
		if !a.state.Current(m.gen) || a.state.View() != nav.Settings {
			return a, nil
		}
		a.sync.Pushing = false
		return a, a.reload()
	case frequencySavedMsg:
		a.busy = ""
		if m.err != nil {
			a.modal = render.Alert("Error", api.Message(m.err))
			return a, nil
		}
		a.sync.EditingFreq = false
		a.setStatus("Settings updated!", false)
		return a, a.reload()
	case pulledMsg:
		a.busy = ""
		if m.err != nil {
			a.modal = render.Alert("Pull Failed", api.Message(m.err))
			return a, nil
		}
		a.setStatus("Local data replaced from sheet", false)
		return a, a.navigate(nav.Expenses)
	}
	return a, nil
}

func alertTitle(err error) string {
	var v *transfer.ValidationError
	if errors.As(err, &v) || errors.Is(err, controller.ErrInvalidAmount) {
		return "Check Input"
	}
	return "Error"
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}
	switch {
	case a.modal != nil:
		return a.handleModalKey(m)
	case a.saving:
		return a, nil
	case a.transfer != nil:
		return a.handleTransferKey(m)
	case a.state.Panel() == nav.PanelForm:
		return a.handleFormKey(m)
	case a.state.View() == nav.Settings:
		return a.handleSettingsKey(m)
	}
	return a.handleListKey(m)
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.modal.Kind == render.ModalAlert {
		if key.Matches(m, a.keys.Dismiss) {
			a.modal = nil
		}
		return a, nil
	}
	switch {
	case key.Matches(m, a.keys.Confirm):
		confirm := a.onConfirm
		a.modal, a.onConfirm = nil, nil
		if confirm != nil {
			return a, confirm()
		}
	case key.Matches(m, a.keys.Cancel):
		a.modal, a.onConfirm = nil, nil
	}
	return a, nil
}

func (a *App) tabKey(m tea.KeyMsg) (tea.Cmd, bool) {
	if !key.Matches(m, a.keys.Tabs) {
		return nil, false
	}
	n, err := strconv.Atoi(m.String())
	if err != nil || n < 1 || n > len(nav.Views) {
		return nil, false
	}
	return a.navigate(nav.Views[n-1]), true
}

func (a *App) handleListKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := a.tabKey(m); ok {
		return a, cmd
	}
	view := a.state.View()
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Close):
		a.closePanels()
	case key.Matches(m, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.cursor < len(a.table.Rows)-1 {
			a.cursor++
		}
	case key.Matches(m, a.keys.Open):
		if id := a.cursorID(); id != "" {
			return a, a.openDetail(id)
		}
	case key.Matches(m, a.keys.New):
		return a, a.openNew(view)
	case key.Matches(m, a.keys.Edit):
		if a.detail != nil && a.detail.CanEdit {
			return a, a.openEdit(view, a.detail.ID)
		}
	case key.Matches(m, a.keys.Delete):
		id := a.cursorID()
		if a.detail != nil {
			if !a.detail.CanDelete {
				return a, nil
			}
			id = a.detail.ID
		}
		if id != "" {
			a.state.Select(id)
			a.confirmDelete(view)
		}
	case key.Matches(m, a.keys.AddFunds):
		if view == nav.Wallets && a.detail != nil {
			id := a.detail.ID
			a.state.OpenEdit(id)
			a.openTransfer(a.ctl.Payments.AddFunds(id))
		}
	case key.Matches(m, a.keys.Refresh):
		return a, a.reload()
	}
	return a, nil
}

func (a *App) cursorID() string {
	if a.cursor < 0 || a.cursor >= len(a.table.Rows) {
		return ""
	}
	return a.table.Rows[a.cursor].ID
}

func (a *App) openDetail(id string) tea.Cmd {
	a.state.OpenDetail(id)
	a.detail = nil
	screen, gen := a.screen(a.state.View()), a.state.Generation()
	return func() tea.Msg {
		d, err := screen.Detail(a.ctx, id)
		return detailMsg{gen: gen, id: id, detail: d, err: err}
	}
}

func (a *App) openNew(view nav.View) tea.Cmd {
	if view == nav.Payments {
		a.state.OpenNew()
		a.openTransfer(a.ctl.Payments.NewTransfer())
		return nil
	}
	return a.openEdit(view, "")
}

func (a *App) openEdit(view nav.View, id string) tea.Cmd {
	ed, ok := a.editor(view)
	if !ok {
		return nil
	}
	a.state.OpenEdit(id)
	a.detail = nil
	a.form = nil
	gen := a.state.Generation()
	return func() tea.Msg {
		f, err := ed.Form(a.ctx, id)
		return formMsg{gen: gen, form: f, err: err}
	}
}

// confirmDelete asks before deleting the selected record of view.
func (a *App) confirmDelete(view nav.View) {
	screen, id := a.screen(view), a.state.SelectedID()
	a.modal = render.DeleteConfirm()
	a.onConfirm = func() tea.Cmd {
		a.busy = "Deleting..."
		return func() tea.Msg {
			if err := screen.Delete(a.ctx, id); err != nil {
				return deleteFailedMsg{err: err}
			}
			return deletedMsg{}
		}
	}
}

func (a *App) saveForm() tea.Cmd {
	f := a.form
	if f == nil || f.Save == nil {
		return nil
	}
	a.saving = true
	a.busy = "Saving..."
	view := a.state.View()
	title := f.Title
	return func() tea.Msg {
		if err := f.Save(a.ctx, f); err != nil {
			return saveFailedMsg{err: err}
		}
		return savedMsg{view: view, status: title + " saved"}
	}
}

func (a *App) handleSettingsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.sync.EditingFreq {
		switch m.Type {
		case tea.KeyEsc:
			a.sync.EditingFreq = false
		case tea.KeyEnter:
			text := a.freqInput
			a.busy = "Saving..."
			return a, func() tea.Msg {
				return frequencySavedMsg{err: a.ctl.Settings.SaveFrequency(a.ctx, text)}
			}
		case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
			a.freqInput = dropLast(a.freqInput)
		case tea.KeyRunes:
			a.freqInput += digits(m.Runes)
		}
		return a, nil
	}

	if cmd, ok := a.tabKey(m); ok {
		return a, cmd
	}
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Refresh):
		if a.sync.Failed != "" {
			a.sync = render.SyncPanel{Loading: true}
		}
		return a, a.reload()
	case a.sync.Loading || a.sync.Failed != "":
		return a, nil
	case key.Matches(m, a.keys.Push):
		if a.sync.Pushing {
			return a, nil
		}
		a.sync.Pushing = true
		a.busy = "Pushing..."
		return a, func() tea.Msg {
			return pushDoneMsg{err: a.ctl.Settings.Push(a.ctx)}
		}
	case key.Matches(m, a.keys.Frequency):
		a.sync.EditingFreq = true
		a.freqInput = a.sync.Frequency
	case key.Matches(m, a.keys.Pull):
		a.modal = render.Confirm("Hard Reset?", "Local data will be replaced with the spreadsheet contents. Unpushed changes are lost.")
		a.onConfirm = func() tea.Cmd {
			a.busy = "Pulling..."
			return func() tea.Msg {
				return pulledMsg{err: a.ctl.Settings.Pull(a.ctx)}
			}
		}
	}
	return a, nil
}

func (a *App) size() (int, int) {
	w, h := a.width, a.height
	if w <= 0 {
		w = 100
	}
	if h <= 0 {
		h = 30
	}
	return w, h
}

func (a *App) chrome() render.Chrome {
	view := a.state.View()
	c := a.state.Chrome()
	tabs := make([]render.Tab, len(nav.Views))
	for i, v := range nav.Views {
		tabs[i] = render.Tab{Key: strconv.Itoa(i + 1), Label: v.Label(), Active: v == view}
	}

	var keys []key.Binding
	switch {
	case a.transfer != nil:
		keys = a.keys.transferHelp()
	case a.state.Panel() == nav.PanelForm:
		keys = a.keys.formHelp()
	case view == nav.Settings:
		keys = a.keys.settingsHelp()
	case a.detail != nil:
		keys = a.keys.detailHelp()
	default:
		keys = a.keys.listHelp(c.Action != "")
	}
	return render.Chrome{
		Title:   c.Title,
		Action:  c.Action,
		Tabs:    tabs,
		Status:  a.status,
		IsError: a.statusErr,
		Busy:    a.busy,
		Keys:    keys,
	}
}

func (a *App) View() string {
	w, h := a.size()
	c := a.chrome()
	header := render.Header(c, w)
	footer := render.Footer(c, w)
	bodyH := max(3, h-lipgloss.Height(header)-lipgloss.Height(footer)-2)

	out := header + "\n\n" + a.body(w, bodyH) + "\n" + footer
	if a.modal != nil {
		out = render.RenderModal(out, a.modal, w, h)
	}
	return out
}

func (a *App) body(w, h int) string {
	if a.state.View() == nav.Settings {
		p := a.sync
		if p.EditingFreq {
			p.Frequency = a.freqInput
		}
		return render.RenderSync(p, w)
	}
	if a.transfer != nil {
		return render.RenderTransfer(*a.transfer, w)
	}
	if a.state.Panel() == nav.PanelForm {
		if a.form == nil {
			return render.Paint("Loading...", render.ToneMuted)
		}
		return render.RenderForm(a.form, w)
	}

	var list string
	switch {
	case a.loadErr != "":
		list = render.Paint("Error: "+a.loadErr, render.ToneNegative) + "\n\n" + render.Paint("[r] Retry", render.ToneAccent)
	case a.loading && len(a.table.Rows) == 0:
		list = render.Paint("Loading...", render.ToneMuted)
	}
	if a.state.Panel() != nav.PanelDetail {
		if list == "" {
			list = render.RenderTable(a.table, a.cursor, w, h)
		}
		return list
	}

	listW := w * 3 / 5
	detailW := w - listW - 1
	if list == "" {
		list = render.RenderTable(a.table, a.cursor, listW, h)
	}
	detail := render.Paint("Loading...", render.ToneMuted)
	if a.detail != nil {
		detail = render.RenderDetail(*a.detail, detailW)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(listW).Render(list), " ", detail)
}
