package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/bookkeep/internal/lookup"
	"github.com/jask/bookkeep/internal/nav"
	"github.com/jask/bookkeep/internal/render"
	"github.com/jask/bookkeep/internal/transfer"
)

func (a *App) handleFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.form == nil {
		if m.Type == tea.KeyEsc {
			a.closePanels()
		}
		return a, nil
	}
	f := a.form
	fld := f.Focused()

	switch {
	case m.Type == tea.KeyEsc:
		a.closePanels()
		return a, nil
	case key.Matches(m, a.keys.Save):
		return a, a.saveForm()
	case key.Matches(m, a.keys.Next):
		a.leaveField(fld)
		f.Move(1)
		return a, nil
	case key.Matches(m, a.keys.Prev):
		a.leaveField(fld)
		f.Move(-1)
		return a, nil
	}
	if fld == nil || fld.Disabled {
		return a, nil
	}

	if fld.Kind == render.FieldSelect {
		switch m.Type {
		case tea.KeyEnter:
			if opts := fld.Filtered(); len(opts) > 0 {
				fld.Value = opts[0].Value
			}
			fld.Query = ""
			f.Move(1)
		case tea.KeyLeft:
			fld.Value = cycle(fld.Filtered(), fld.Value, -1)
		case tea.KeyRight:
			fld.Value = cycle(fld.Filtered(), fld.Value, 1)
		case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
			fld.Query = dropLast(fld.Query)
		case tea.KeySpace:
			fld.Query += " "
		case tea.KeyRunes:
			fld.Query += string(m.Runes)
		}
		return a, nil
	}

	switch m.Type {
	case tea.KeyEnter:
		f.Move(1)
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		fld.Value = dropLast(fld.Value)
	case tea.KeySpace:
		if fld.Kind == render.FieldText {
			fld.Value += " "
		}
	case tea.KeyRunes:
		fld.Value += accept(fld.Kind, m.Runes)
	}
	return a, nil
}

// leaveField drops a select's query when focus moves away.
func (a *App) leaveField(fld *render.Field) {
	if fld != nil {
		fld.Query = ""
	}
}

func (a *App) openTransfer(f *transfer.Form) {
	a.detail = nil
	a.form = nil
	focus := render.FocusMode
	if f.Mode == transfer.Deposit {
		focus = render.FocusVendor
	}
	a.transfer = &render.TransferView{
		Form:    f,
		Vendors: a.ctl.Payments.VendorOptions(),
		Wallets: a.ctl.Payments.WalletOptions(),
		Focus:   focus,
		Symbol:  a.deps.Symbol,

		DateFormat: a.deps.DateFormat,
	}
}

func (a *App) handleTransferKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := a.transfer
	f := v.Form

	switch {
	case m.Type == tea.KeyEsc:
		a.closePanels()
		return a, nil
	case key.Matches(m, a.keys.Save):
		return a, a.submitTransfer()
	case key.Matches(m, a.keys.Next):
		a.moveTransfer(1)
		return a, nil
	case key.Matches(m, a.keys.Prev):
		a.moveTransfer(-1)
		return a, nil
	}

	switch pos := v.Focus; {
	case pos == render.FocusMode:
		switch m.Type {
		case tea.KeySpace, tea.KeyEnter, tea.KeyLeft, tea.KeyRight:
			if f.Mode == transfer.Payment {
				f.SetMode(transfer.Deposit)
				return a, nil
			}
			f.SetMode(transfer.Payment)
			if f.VendorID != "" {
				return a, a.loadBills(f.VendorID)
			}
		}
	case pos == render.FocusVendor || pos == render.FocusWallet:
		opts, current := v.Vendors, f.VendorID
		if pos == render.FocusWallet {
			opts, current = v.Wallets, f.WalletID
		}
		matches := lookup.Match(v.Query, opts)
		picked := ""
		switch m.Type {
		case tea.KeyEnter:
			if len(matches) > 0 {
				picked = matches[0].Value
			}
			v.Query = ""
		case tea.KeyLeft:
			picked = cycle(matches, current, -1)
		case tea.KeyRight:
			picked = cycle(matches, current, 1)
		case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
			v.Query = dropLast(v.Query)
		case tea.KeySpace:
			v.Query += " "
		case tea.KeyRunes:
			v.Query += string(m.Runes)
		}
		if picked == "" || picked == current {
			return a, nil
		}
		if pos == render.FocusWallet {
			f.SelectWallet(picked)
			return a, nil
		}
		f.SelectVendor(picked, nil)
		if f.Mode == transfer.Deposit {
			return a, nil
		}
		return a, a.loadBills(picked)
	case pos == render.FocusFullPay:
		switch m.Type {
		case tea.KeySpace, tea.KeyEnter:
			f.ToggleFullPay()
		}
	case pos == render.FocusAmount:
		if !f.AmountEnabled() {
			return a, nil
		}
		switch m.Type {
		case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
			f.SetAmountInput(dropLast(f.AmountText))
		case tea.KeyRunes:
			f.SetAmountInput(f.AmountText + accept(render.FieldNumber, m.Runes))
		}
	case pos >= render.FocusRows:
		i := pos - render.FocusRows
		if i >= len(f.Rows) {
			return a, nil
		}
		switch m.Type {
		case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
			f.SetRowInput(i, dropLast(f.Rows[i].Text))
		case tea.KeyRunes:
			f.SetRowInput(i, f.Rows[i].Text+accept(render.FieldNumber, m.Runes))
		}
	}
	return a, nil
}

// moveTransfer steps focus to the next position usable in the current mode.
func (a *App) moveTransfer(delta int) {
	v := a.transfer
	v.Query = ""
	n := v.Positions()
	for step := 0; step < n; step++ {
		v.Focus = ((v.Focus+delta)%n + n) % n
		if v.Focusable(v.Focus) {
			return
		}
	}
}

func (a *App) loadBills(vendorID string) tea.Cmd {
	gen := a.state.Generation()
	return func() tea.Msg {
		bills, err := a.ctl.Payments.Bills(a.ctx)
		return billsMsg{gen: gen, vendorID: vendorID, bills: bills, err: err}
	}
}

func (a *App) submitTransfer() tea.Cmd {
	f := a.transfer.Form
	a.saving = true
	a.busy = "Saving..."
	return func() tea.Msg {
		if err := a.ctl.Payments.Submit(a.ctx, f); err != nil {
			return saveFailedMsg{err: err}
		}
		return savedMsg{view: nav.Payments, status: "Transfer recorded"}
	}
}

// cycle returns the option after (or before) current, wrapping. With no
// current selection it starts from the first option.
func cycle(opts []lookup.Option, current string, delta int) string {
	if len(opts) == 0 {
		return current
	}
	at := -1
	for i, o := range opts {
		if o.Value == current {
			at = i
			break
		}
	}
	if at < 0 {
		return opts[0].Value
	}
	n := len(opts)
	return opts[((at+delta)%n+n)%n].Value
}

// accept filters typed runes by field kind.
func accept(kind render.FieldKind, runes []rune) string {
	var b strings.Builder
	for _, r := range runes {
		switch kind {
		case render.FieldNumber:
			if unicode.IsDigit(r) || r == '.' || r == ',' {
				b.WriteRune(r)
			}
		case render.FieldDate:
			if unicode.IsDigit(r) || r == '-' {
				b.WriteRune(r)
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func digits(runes []rune) string {
	var b strings.Builder
	for _, r := range runes {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func dropLast(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}
