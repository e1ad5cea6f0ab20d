package transfer

import (
	"github.com/shopspring/decimal"

	"github.com/jask/bookkeep/internal/model"
	"github.com/jask/bookkeep/internal/money"
)

// Mode is the direction of a transfer.
type Mode int

const (
	Payment Mode = iota // wallet to vendor, applied to unpaid expenses
	Deposit             // money into a wallet
)

func (m Mode) String() string {
	if m == Deposit {
		return "In (Receive)"
	}
	return "Out (Pay)"
}

// Row is one unpaid expense in the allocation table.
type Row struct {
	ExpenseID string
	Date      string
	Category  model.Category
	Max       decimal.Decimal
	Text      string
}

// Value is the row's parsed input. Unparseable text counts as zero.
func (r Row) Value() decimal.Decimal { return money.OrZero(r.Text) }

// Form is the state of the record-transfer form. All methods are synchronous
// and never touch the network.
type Form struct {
	Mode       Mode
	VendorID   string
	WalletID   string
	AmountText string
	FullPay    bool
	Rows       []Row

	symbol string
	bills  []model.Expense
}

// NewForm returns an empty payment form. symbol is used in messages.
func NewForm(symbol string) *Form {
	return &Form{symbol: symbol}
}

// VendorLabel names the vendor field for the current mode.
func (f *Form) VendorLabel() string {
	if f.Mode == Deposit {
		return "Source Vendor"
	}
	return "Target Vendor"
}

// WalletLabel names the wallet field for the current mode.
func (f *Form) WalletLabel() string {
	if f.Mode == Deposit {
		return "Target Wallet"
	}
	return "Source Wallet"
}

// ShowBills reports whether the unpaid expense table is visible.
func (f *Form) ShowBills() bool { return f.Mode == Payment }

// AmountEnabled reports whether the aggregate amount accepts input.
func (f *Form) AmountEnabled() bool { return f.Mode == Deposit || !f.FullPay }

// SetMode switches direction. Vendor and wallet selections survive. Entering
// deposit mode clears the amount; returning to payment mode reloads the bills
// of the selected vendor with empty inputs.
func (f *Form) SetMode(m Mode) {
	if m == f.Mode {
		return
	}
	f.Mode = m
	f.FullPay = false
	f.AmountText = ""
	f.Rows = nil
	if m == Payment {
		f.loadRows()
	}
}

// SelectVendor picks the vendor and, in payment mode, loads their outstanding
// expenses in the order given. Amount, full-pay and all row inputs reset.
func (f *Form) SelectVendor(id string, expenses []model.Expense) {
	f.VendorID = id
	f.AmountText = ""
	f.FullPay = false
	f.bills = nil
	if id != "" {
		f.bills = model.Unpaid(id, expenses)
	}
	f.Rows = nil
	if f.Mode == Payment {
		f.loadRows()
	}
}

// LoadBills supplies the selected vendor's expenses after the fact. Unlike
// SelectVendor it keeps what the user already typed: a full-pay or aggregate
// amount is spread over the new rows, otherwise row inputs carry over by
// expense id. Bills for any other vendor are ignored.
func (f *Form) LoadBills(vendorID string, expenses []model.Expense) {
	if vendorID == "" || vendorID != f.VendorID {
		return
	}
	f.bills = model.Unpaid(vendorID, expenses)
	if f.Mode != Payment {
		return
	}
	typed := make(map[string]string, len(f.Rows))
	for _, r := range f.Rows {
		typed[r.ExpenseID] = r.Text
	}
	f.Rows = nil
	f.loadRows()
	switch {
	case f.FullPay:
		f.FullPay = false
		f.ToggleFullPay()
	case f.AmountText != "":
		f.SetAmountInput(f.AmountText)
	default:
		for i, r := range f.Rows {
			f.SetRowInput(i, typed[r.ExpenseID])
		}
	}
}

func (f *Form) loadRows() {
	for _, e := range f.bills {
		f.Rows = append(f.Rows, Row{
			ExpenseID: e.ID,
			Date:      e.Date,
			Category:  e.Category,
			Max:       e.Balance,
		})
	}
}

// SelectWallet picks the wallet.
func (f *Form) SelectWallet(id string) { f.WalletID = id }

// SetRowInput stores text for row i. Values above the row's balance are
// clamped and the text rewritten to the balance; negative values clear it.
func (f *Form) SetRowInput(i int, text string) {
	if i < 0 || i >= len(f.Rows) {
		return
	}
	row := &f.Rows[i]
	v := money.OrZero(text)
	switch {
	case v.GreaterThan(row.Max):
		text = money.Plain(row.Max)
	case v.IsNegative():
		text = ""
	}
	row.Text = text
}

// SetAmountInput stores the aggregate amount and spreads it over the rows.
// It is ignored while full-pay is on.
func (f *Form) SetAmountInput(text string) {
	if f.Mode == Deposit {
		f.AmountText = text
		return
	}
	if f.FullPay {
		return
	}
	f.AmountText = text
	values := Allocate(f.maxes(), money.OrZero(text), false)
	for i, v := range values {
		if v.IsPositive() {
			f.Rows[i].Text = money.Plain(v)
		} else {
			f.Rows[i].Text = ""
		}
	}
}

// ToggleFullPay fills every row with its balance, or clears all inputs.
func (f *Form) ToggleFullPay() {
	if f.Mode == Deposit {
		return
	}
	f.FullPay = !f.FullPay
	if !f.FullPay {
		for i := range f.Rows {
			f.Rows[i].Text = ""
		}
		f.AmountText = ""
		return
	}
	values := Allocate(f.maxes(), decimal.Zero, true)
	for i, v := range values {
		f.Rows[i].Text = money.Plain(v)
	}
	f.AmountText = money.Plain(money.Sum(values))
}

func (f *Form) maxes() []decimal.Decimal {
	out := make([]decimal.Decimal, len(f.Rows))
	for i, r := range f.Rows {
		out[i] = r.Max
	}
	return out
}

// Total is the sum of row values in payment mode and the entered amount in
// deposit mode.
func (f *Form) Total() decimal.Decimal {
	if f.Mode == Deposit {
		return money.OrZero(f.AmountText)
	}
	total := decimal.Zero
	for _, r := range f.Rows {
		total = total.Add(r.Value())
	}
	return total
}

// Allocations lists the rows with a positive value.
func (f *Form) Allocations() []model.Allocation {
	var out []model.Allocation
	for _, r := range f.Rows {
		if v := r.Value(); v.IsPositive() {
			out = append(out, model.Allocation{ExpenseID: r.ExpenseID, Amount: v})
		}
	}
	return out
}

// Request builds the transfer without checking the wallet balance.
func (f *Form) Request() (model.TransferRequest, error) {
	if f.VendorID == "" {
		return model.TransferRequest{}, ErrNoVendor
	}
	if f.WalletID == "" {
		return model.TransferRequest{}, ErrNoWallet
	}

	req := model.TransferRequest{VendorID: f.VendorID, WalletID: f.WalletID}
	if f.Mode == Deposit {
		amount := money.OrZero(f.AmountText)
		if !amount.IsPositive() {
			return model.TransferRequest{}, ErrInvalidAmount
		}
		req.Type = model.TransferDeposit
		req.Amount = amount
	} else {
		allocs := f.Allocations()
		if len(allocs) == 0 {
			return model.TransferRequest{}, ErrNoAllocation
		}
		req.Type = model.TransferPayment
		req.Amount = f.Total()
		req.Allocations = allocs
	}
	if err := model.Validate(req); err != nil {
		return model.TransferRequest{}, &ValidationError{Message: err.Error()}
	}
	return req, nil
}

// CheckFunds rejects payments larger than the wallet balance. Deposits always pass.
func (f *Form) CheckFunds(req model.TransferRequest, walletBalance decimal.Decimal) error {
	if req.Type != model.TransferPayment {
		return nil
	}
	if walletBalance.LessThan(req.Amount) {
		return insufficientFunds(req.Amount, f.symbol)
	}
	return nil
}

// Submit is Request followed by CheckFunds.
func (f *Form) Submit(walletBalance decimal.Decimal) (model.TransferRequest, error) {
	req, err := f.Request()
	if err != nil {
		return model.TransferRequest{}, err
	}
	if err := f.CheckFunds(req, walletBalance); err != nil {
		return model.TransferRequest{}, err
	}
	return req, nil
}
