package fakeapi

import (
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/jask/bookkeep/internal/model"
)

type transferBody struct {
	Type        model.TransferType `json:"type"`
	VendorID    string             `json:"vendorId"`
	WalletID    string             `json:"walletId"`
	Amount      decimal.Decimal    `json:"amount"`
	Allocations []model.Allocation `json:"allocations"`
}

func (b *Backend) registerLedger(g *gin.RouterGroup) {
	g.POST("/payments", func(c *gin.Context) {
		var in transferBody
		if err := c.ShouldBindJSON(&in); err != nil {
			respond(c, 1000, "Invalid request body", nil)
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()

		if in.Type == model.TransferDeposit {
			dep, err := b.processDeposit(in)
			if err != nil {
				fail(c, err)
				return
			}
			respond(c, 0, "Deposit processed successfully", gin.H{"deposit": dep})
			return
		}
		pay, err := b.processPayment(in)
		if err != nil {
			fail(c, err)
			return
		}
		respond(c, 0, "Payment processed successfully", gin.H{"payment": pay})
	})
}

func (b *Backend) wallet(id string) *model.Wallet {
	for i := range b.data.Wallets {
		if b.data.Wallets[i].ID == id {
			return &b.data.Wallets[i]
		}
	}
	return nil
}

func (b *Backend) expense(id string) *model.Expense {
	for i := range b.data.Expenses {
		if b.data.Expenses[i].ID == id {
			return &b.data.Expenses[i]
		}
	}
	return nil
}

// processPayment debits the wallet and applies each allocation to its
// expense. Caller holds b.mu.
func (b *Backend) processPayment(in transferBody) (model.Payment, error) {
	w := b.wallet(in.WalletID)
	if w == nil {
		return model.Payment{}, &appError{code: 2001, msg: "Wallet not found"}
	}
	if w.Balance.LessThan(in.Amount) {
		return model.Payment{}, &appError{code: 2001, msg: fmt.Sprintf("Insufficient funds. Balance: %s", w.Balance)}
	}
	refs, err := json.Marshal(in.Allocations)
	if err != nil {
		return model.Payment{}, err
	}

	w.Balance = w.Balance.Sub(in.Amount)
	pay := model.Payment{
		ID:          model.NewID("PAY"),
		VendorID:    in.VendorID,
		WalletID:    in.WalletID,
		Date:        b.today(),
		Amount:      in.Amount,
		Allocations: in.Allocations,
		Refs:        refs,
	}
	b.data.Payments = append(b.data.Payments, pay)

	for _, a := range in.Allocations {
		e := b.expense(a.ExpenseID)
		if e == nil {
			continue
		}
		e.Balance = decimal.Max(decimal.Zero, e.Balance.Sub(a.Amount))
		if e.Balance.IsZero() {
			e.Status = model.StatusPaid
		} else {
			e.Status = model.StatusPartial
		}
	}
	b.markPending("Wallets")
	b.markPending("Payments")
	if len(in.Allocations) > 0 {
		b.markPending("Expenses")
	}
	return pay, nil
}

// processDeposit credits the wallet. Caller holds b.mu.
func (b *Backend) processDeposit(in transferBody) (model.Deposit, error) {
	w := b.wallet(in.WalletID)
	if w == nil {
		return model.Deposit{}, &appError{code: 2001, msg: "Wallet not found"}
	}
	w.Balance = w.Balance.Add(in.Amount)
	dep := model.Deposit{
		ID:       model.NewID("DEP"),
		WalletID: in.WalletID,
		VendorID: in.VendorID,
		Source:   "Vendor Transfer",
		Amount:   in.Amount,
		Date:     b.today(),
		Notes:    "Transfer from Vendor",
	}
	b.data.Deposits = append(b.data.Deposits, dep)
	b.markPending("Wallets")
	b.markPending("Deposits")
	return dep, nil
}

// revert undoes the wallet and expense effects of a payment or deposit about
// to be deleted. Caller holds b.mu.
func (b *Backend) revert(path, id string) {
	switch path {
	case "payments":
		for _, p := range b.data.Payments {
			if p.ID != id {
				continue
			}
			if w := b.wallet(p.WalletID); w != nil {
				w.Balance = w.Balance.Add(p.Amount)
			}
			refs, err := p.References()
			if err != nil {
				b.opts.Logger.Warn().Err(err).Str("payment", p.ID).Msg("unreadable refs, expenses not restored")
				return
			}
			for _, r := range refs {
				e := b.expense(r.ExpenseID)
				if e == nil || !r.Amount.IsPositive() {
					continue
				}
				e.Balance = e.Balance.Add(r.Amount)
				if e.Balance.GreaterThanOrEqual(e.Total) {
					e.Status = model.StatusUnpaid
				} else {
					e.Status = model.StatusPartial
				}
			}
			return
		}
	case "deposits":
		for _, d := range b.data.Deposits {
			if d.ID == id {
				if w := b.wallet(d.WalletID); w != nil {
					w.Balance = w.Balance.Sub(d.Amount)
				}
				return
			}
		}
	}
}

// checkDependencies refuses deletes of referenced records. Caller holds b.mu.
func (b *Backend) checkDependencies(path, id string) error {
	switch path {
	case "wallets":
		for _, p := range b.data.Payments {
			if p.WalletID == id {
				return &appError{code: 500, msg: "Cannot delete Wallet. Used in Payment " + p.ID}
			}
		}
		for _, d := range b.data.Deposits {
			if d.WalletID == id {
				return &appError{code: 500, msg: "Cannot delete Wallet. Used in Deposit " + d.ID}
			}
		}
	case "vendors":
		for _, e := range b.data.Expenses {
			if e.VendorID == id {
				return &appError{code: 500, msg: "Cannot delete Vendor. Has link to Expense " + e.ID}
			}
		}
		for _, p := range b.data.Payments {
			if p.VendorID == id {
				return &appError{code: 500, msg: "Cannot delete Vendor. Has link to Payment " + p.ID}
			}
		}
	case "expenses":
		for _, p := range b.data.Payments {
			refs, _ := p.References()
			for _, r := range refs {
				if r.ExpenseID == id {
					return &appError{code: 500, msg: "Cannot delete Expense. It is part of Payment " + p.ID}
				}
			}
		}
	}
	return nil
}
