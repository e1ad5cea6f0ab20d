package render

import (
	"strings"

	"github.com/jask/bookkeep/internal/lookup"
	"github.com/jask/bookkeep/internal/model"
	"github.com/jask/bookkeep/internal/money"
	"github.com/jask/bookkeep/internal/transfer"
)

// Focus positions in the transfer form. Rows follow FocusRows.
const (
	FocusMode = iota
	FocusVendor
	FocusWallet
	FocusFullPay
	FocusAmount
	FocusRows
)

// TransferView is the record-transfer screen.
type TransferView struct {
	Form    *transfer.Form
	Vendors []lookup.Option
	Wallets []lookup.Option
	Focus   int
	Query   string
	Symbol  string
	// DateFormat lays out bill dates; empty shows them as sent.
	DateFormat string
}

// Focusable reports whether position i can take focus in the current mode.
func (v TransferView) Focusable(i int) bool {
	f := v.Form
	switch {
	case i == FocusFullPay:
		return f.Mode == transfer.Payment
	case i == FocusAmount:
		return f.AmountEnabled()
	case i >= FocusRows:
		return f.Mode == transfer.Payment && i-FocusRows < len(f.Rows)
	}
	return i >= 0
}

// Positions is the number of focus positions.
func (v TransferView) Positions() int { return FocusRows + len(v.Form.Rows) }

// RenderTransfer draws the record-transfer form.
func RenderTransfer(v TransferView, width int) string {
	f := v.Form
	inner := max(30, width-4)
	var b strings.Builder
	b.WriteString(titleStyle.Render("Record Transfer") + "\n\n")

	pay, dep := " Out (Pay) ", " In (Receive) "
	if f.Mode == transfer.Payment {
		pay = selectedStyle.Render(pay)
		dep = mutedStyle.Render(dep)
	} else {
		dep = selectedStyle.Render(dep)
		pay = mutedStyle.Render(pay)
	}
	b.WriteString(fieldLabel("Transfer Type", v.Focus == FocusMode, false) + "  " + pay + dep + "\n")

	b.WriteString(v.selectLine(f.VendorLabel(), FocusVendor, f.VendorID, v.Vendors, inner))
	b.WriteString(v.selectLine(f.WalletLabel(), FocusWallet, f.WalletID, v.Wallets, inner))

	if f.Mode == transfer.Payment {
		check := "[ ]"
		if f.FullPay {
			check = "[x]"
		}
		b.WriteString("\n" + fieldLabel(check+" Pay Full Amount", v.Focus == FocusFullPay, false) + "\n")
	}

	amount := f.AmountText
	if amount == "" {
		amount = mutedStyle.Render("0.00")
	}
	b.WriteString("\n" + fieldLabel("Amount", v.Focus == FocusAmount, !f.AmountEnabled()) + "\n")
	b.WriteString("  " + v.symbol() + " " + amount + "\n")

	if f.Mode == transfer.Payment {
		b.WriteString("\n" + headerStyle.Render("TOTAL ALLOCATED") + "  " + titleStyle.Render(money.Format(f.Total(), v.Symbol)) + "\n")
		b.WriteString("\n" + headerStyle.Render("UNPAID EXPENSES") + "\n")
		b.WriteString(v.bills(inner))
	} else {
		b.WriteString("\n" + headerStyle.Render("RECEIVING FUNDS") + "\n")
		b.WriteString(mutedStyle.Render("Funds will be added to the selected wallet immediately. Vendor debt balance will NOT be affected.") + "\n")
	}

	b.WriteString("\n" + mutedStyle.Render("[tab] Next  [space] Toggle  [ctrl+s] Save  [esc] Cancel"))
	return panelStyle.Width(width - 2).Render(b.String())
}

func (v TransferView) symbol() string {
	if v.Symbol == "" {
		return money.DefaultSymbol
	}
	return v.Symbol
}

func (v TransferView) selectLine(label string, pos int, value string, opts []lookup.Option, width int) string {
	focused := v.Focus == pos
	fld := Field{Label: label, Kind: FieldSelect, Value: value, Options: opts}
	if focused {
		fld.Query = v.Query
	}
	out := "\n" + fieldLabel(label, focused, false) + "\n" + fieldBox(&fld, focused, width) + "\n"
	if focused {
		out += optionList(&fld, width)
	}
	return out
}

func (v TransferView) bills(width int) string {
	f := v.Form
	if f.VendorID == "" {
		return mutedStyle.Render("Select a vendor on the left to start.") + "\n"
	}
	if len(f.Rows) == 0 {
		return infoStyle.Render("No outstanding bills.") + "\n"
	}
	t := Table{Columns: []string{"Date", "Category", "Expense", "Balance", "Payment"}, StatusColumn: -1}
	cursor := -1
	for i, r := range f.Rows {
		text := r.Text
		if text == "" {
			text = "0.00"
		}
		t.Rows = append(t.Rows, Row{
			ID:    r.ExpenseID,
			Cells: []string{model.FormatDate(r.Date, v.DateFormat), string(r.Category), r.ExpenseID, money.Format(r.Max, v.Symbol), text},
		})
		if v.Focus == FocusRows+i {
			cursor = i
		}
	}
	return RenderTable(t, cursor, width, len(t.Rows)+1) + "\n"
}
