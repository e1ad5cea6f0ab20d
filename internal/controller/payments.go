package controller

import (
	"context"
	"fmt"

	"github.com/jask/bookkeep/internal/api"
	"github.com/jask/bookkeep/internal/lookup"
	"github.com/jask/bookkeep/internal/model"
	"github.com/jask/bookkeep/internal/render"
	"github.com/jask/bookkeep/internal/transfer"
)

// Payments lists money paid out and records new transfers.
type Payments struct {
	Deps
}

func (c *Payments) List(ctx context.Context) (render.Table, error) {
	payments, err := api.List[model.Payment](ctx, c.Client, api.Payments)
	if err != nil {
		return render.Table{}, err
	}
	t := render.Table{
		Columns:      []string{"ID", "Date", "Recipient Vendor", "Source Wallet", "Amount Paid"},
		StatusColumn: -1,
		Empty:        "No payments recorded yet.",
	}
	for _, p := range payments {
		t.Rows = append(t.Rows, render.Row{
			ID: p.ID,
			Cells: []string{
				p.ID,
				c.date(p.Date),
				c.Cache.VendorName(p.VendorID),
				c.Cache.WalletName(p.WalletID),
				c.money(p.Amount),
			},
		})
	}
	return t, nil
}

// Detail shows a payment and the expenses it was applied to. Payments cannot
// be edited, only deleted.
func (c *Payments) Detail(ctx context.Context, id string) (render.Detail, error) {
	p, found, err := api.Get[model.Payment](ctx, c.Client, api.Payments, id)
	if err != nil {
		return render.Detail{}, err
	}
	if !found {
		return render.Detail{}, notFound("Payment")
	}

	refs, err := p.References()
	if err != nil {
		c.Log.Warn().Err(err).Str("payment", p.ID).Msg("unreadable payment refs")
		refs = nil
	}
	applied := render.Section{Title: "Allocated To", Empty: "No allocation details."}
	for _, r := range refs {
		value := "—"
		if r.Amount.IsPositive() {
			value = c.money(r.Amount)
		}
		applied.Items = append(applied.Items, render.Pair{Label: r.ExpenseID, Value: value})
	}

	return render.Detail{
		ID:    p.ID,
		Title: "Payment Details",
		Fields: []render.Pair{
			{Label: "Date", Value: c.date(p.Date)},
			{Label: "Vendor", Value: c.Cache.VendorName(p.VendorID)},
			{Label: "Source Wallet", Value: c.Cache.WalletName(p.WalletID)},
			{Label: "Amount", Value: c.money(p.Amount), Tone: render.ToneAccent},
		},
		Sections:  []render.Section{applied},
		CanDelete: true,
	}, nil
}

// NewTransfer returns an empty payment form.
func (c *Payments) NewTransfer() *transfer.Form {
	return transfer.NewForm(c.Symbol)
}

// AddFunds returns a deposit form with walletID preselected.
func (c *Payments) AddFunds(walletID string) *transfer.Form {
	f := transfer.NewForm(c.Symbol)
	f.SetMode(transfer.Deposit)
	f.SelectWallet(walletID)
	return f
}

// VendorOptions lists vendors for the transfer form.
func (c *Payments) VendorOptions() []lookup.Option {
	return c.Cache.VendorOptions()
}

// WalletOptions lists wallets with their cached balances.
func (c *Payments) WalletOptions() []lookup.Option {
	wallets := c.Cache.Wallets()
	out := make([]lookup.Option, len(wallets))
	for i, w := range wallets {
		out[i] = lookup.Option{Value: w.ID, Label: fmt.Sprintf("%s (%s)", w.Name, c.money(w.Balance))}
	}
	return out
}

// Bills loads the expenses a vendor selection draws its rows from.
func (c *Payments) Bills(ctx context.Context) ([]model.Expense, error) {
	return api.List[model.Expense](ctx, c.Client, api.Expenses)
}

// Submit validates f, checks the wallet's current balance for payments and
// records the transfer. Nothing is sent when validation fails.
func (c *Payments) Submit(ctx context.Context, f *transfer.Form) error {
	req, err := f.Request()
	if err != nil {
		return err
	}

	if req.Type == model.TransferPayment {
		w, found, err := api.Get[model.Wallet](ctx, c.Client, api.Wallets, req.WalletID)
		if err != nil {
			return err
		}
		if !found {
			return notFound("Wallet")
		}
		if err := f.CheckFunds(req, w.Balance); err != nil {
			return err
		}
		if _, err := api.Create[model.Payment](ctx, c.Client, api.Payments, req); err != nil {
			return err
		}
	} else {
		if _, err := api.Create[model.Deposit](ctx, c.Client, api.PaymentDeposits, req); err != nil {
			return err
		}
	}
	c.Log.Info().Str("type", string(req.Type)).Str("vendor", req.VendorID).Str("wallet", req.WalletID).Str("amount", req.Amount.String()).Msg("transfer recorded")
	c.refresh(ctx)
	return nil
}

// Delete removes a payment. The backend restores the wallet balance, so the
// cache is refreshed.
func (c *Payments) Delete(ctx context.Context, id string) error {
	if err := c.Client.Delete(ctx, api.Payments, id); err != nil {
		return err
	}
	c.refresh(ctx)
	return nil
}
