package controller

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jask/bookkeep/internal/api"
	"github.com/jask/bookkeep/internal/model"
	"github.com/jask/bookkeep/internal/money"
	"github.com/jask/bookkeep/internal/render"
)

// Wallets manages cash and bank accounts.
type Wallets struct {
	Deps
}

func (c *Wallets) List(ctx context.Context) (render.Table, error) {
	wallets, err := api.List[model.Wallet](ctx, c.Client, api.Wallets)
	if err != nil {
		return render.Table{}, err
	}
	t := render.Table{
		Columns:      []string{"ID", "Wallet Name", "Currency", "Current Balance"},
		StatusColumn: -1,
		Empty:        "No wallets yet.",
	}
	for _, w := range wallets {
		t.Rows = append(t.Rows, render.Row{
			ID:    w.ID,
			Cells: []string{w.ID, w.Name, w.Currency, c.money(w.Balance)},
		})
	}
	return t, nil
}

// HistoryEntry is one movement on a wallet.
type HistoryEntry struct {
	ID     string
	Date   string
	Label  string
	Amount decimal.Decimal
	In     bool
}

// History merges a wallet's payments and deposits, newest first.
func History(walletID string, payments []model.Payment, deposits []model.Deposit, vendorName func(string) string) []HistoryEntry {
	var out []HistoryEntry
	for _, p := range payments {
		if p.WalletID != walletID {
			continue
		}
		out = append(out, HistoryEntry{ID: p.ID, Date: p.Date, Label: "To: " + vendorName(p.VendorID), Amount: p.Amount})
	}
	for _, d := range deposits {
		if d.WalletID != walletID {
			continue
		}
		from := d.Source
		if d.VendorID != "" {
			from = vendorName(d.VendorID)
		}
		out = append(out, HistoryEntry{ID: d.ID, Date: d.Date, Label: "From: " + from, Amount: d.Amount, In: true})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return model.ParseDate(out[i].Date).After(model.ParseDate(out[j].Date))
	})
	return out
}

func (c *Wallets) Detail(ctx context.Context, id string) (render.Detail, error) {
	var (
		w        model.Wallet
		found    bool
		payments []model.Payment
		deposits []model.Deposit
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		w, found, err = api.Get[model.Wallet](gctx, c.Client, api.Wallets, id)
		return err
	})
	g.Go(func() (err error) {
		payments, err = api.List[model.Payment](gctx, c.Client, api.Payments)
		return err
	})
	g.Go(func() (err error) {
		deposits, err = api.List[model.Deposit](gctx, c.Client, api.Deposits)
		return err
	})
	if err := g.Wait(); err != nil {
		return render.Detail{}, err
	}
	if !found {
		return render.Detail{}, notFound("Wallet")
	}

	history := render.Section{Title: "Transaction History", Empty: "No transactions found."}
	for _, h := range History(w.ID, payments, deposits, c.Cache.VendorName) {
		sign, tone := "- ", render.ToneNegative
		if h.In {
			sign, tone = "+ ", render.TonePositive
		}
		history.Items = append(history.Items, render.Pair{
			Label: c.date(h.Date) + "  " + h.Label,
			Value: sign + c.money(h.Amount),
			Tone:  tone,
		})
	}

	return render.Detail{
		ID:    w.ID,
		Title: w.Name,
		Fields: []render.Pair{
			{Label: "Currency", Value: w.Currency},
			{Label: "Balance", Value: c.money(w.Balance), Tone: render.ToneAccent},
		},
		Sections:  []render.Section{history},
		CanEdit:   true,
		CanDelete: true,
		Actions:   []render.Action{{Key: "f", Label: "Add Funds"}},
	}, nil
}

// Form returns the wallet form. The balance can only be set on creation.
func (c *Wallets) Form(ctx context.Context, id string) (*render.Form, error) {
	var existing model.Wallet
	title := "Add Wallet"
	balance := ""
	if id != "" {
		w, found, err := api.Get[model.Wallet](ctx, c.Client, api.Wallets, id)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, notFound("Wallet")
		}
		existing = w
		title = "Edit Wallet"
		balance = money.Plain(w.Balance)
	}
	return &render.Form{
		Title: title,
		Fields: []render.Field{
			{Key: "name", Label: "Wallet Name", Value: existing.Name},
			{Key: "balance", Label: "Opening Balance", Kind: render.FieldNumber, Value: balance, Placeholder: "0.00", Disabled: id != ""},
			{Key: "currency", Label: "Currency", Value: model.DefaultCurrency, Disabled: true},
		},
		Save: func(ctx context.Context, f *render.Form) error {
			return c.save(ctx, id, f)
		},
	}, nil
}

func (c *Wallets) save(ctx context.Context, id string, f *render.Form) error {
	name := f.Value("name")
	if id != "" {
		if err := model.Validate(model.Wallet{Name: name}); err != nil {
			return err
		}
		if _, err := api.Update[model.Wallet](ctx, c.Client, api.Wallets, id, map[string]string{"name": name}); err != nil {
			return err
		}
		c.refresh(ctx)
		return nil
	}

	balance := decimal.Zero
	if text := f.Value("balance"); text != "" {
		b, ok := money.Parse(text)
		if !ok {
			return ErrInvalidAmount
		}
		balance = b
	}
	w := model.Wallet{
		ID:       model.NewID(model.PrefixWallet),
		Name:     name,
		Currency: model.DefaultCurrency,
		Balance:  balance,
	}
	if err := model.Validate(w); err != nil {
		return err
	}
	if _, err := api.Create[model.Wallet](ctx, c.Client, api.Wallets, w); err != nil {
		return err
	}
	c.refresh(ctx)
	return nil
}

func (c *Wallets) Delete(ctx context.Context, id string) error {
	if err := c.Client.Delete(ctx, api.Wallets, id); err != nil {
		return err
	}
	c.refresh(ctx)
	return nil
}
