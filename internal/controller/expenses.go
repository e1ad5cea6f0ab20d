package controller

import (
	"context"

	"github.com/jask/bookkeep/internal/api"
	"github.com/jask/bookkeep/internal/lookup"
	"github.com/jask/bookkeep/internal/model"
	"github.com/jask/bookkeep/internal/money"
	"github.com/jask/bookkeep/internal/render"
)

// Expenses manages invoices owed to vendors.
type Expenses struct {
	Deps
}

func (c *Expenses) List(ctx context.Context) (render.Table, error) {
	expenses, err := api.List[model.Expense](ctx, c.Client, api.Expenses)
	if err != nil {
		return render.Table{}, err
	}
	t := render.Table{
		Columns:      []string{"ID", "Vendor", "Date", "Total", "Balance", "Status"},
		StatusColumn: 5,
		Empty:        "No expenses recorded yet.",
	}
	for _, e := range expenses {
		t.Rows = append(t.Rows, render.Row{
			ID: e.ID,
			Cells: []string{
				e.ID,
				c.Cache.VendorName(e.VendorID),
				c.date(e.Date),
				c.money(e.Total),
				c.money(e.Balance),
				string(e.Status),
			},
		})
	}
	return t, nil
}

func (c *Expenses) Detail(ctx context.Context, id string) (render.Detail, error) {
	e, found, err := api.Get[model.Expense](ctx, c.Client, api.Expenses, id)
	if err != nil {
		return render.Detail{}, err
	}
	if !found {
		return render.Detail{}, notFound("Expense")
	}
	return render.Detail{
		ID:    e.ID,
		Title: "Expense Details",
		Fields: []render.Pair{
			{Label: "Date", Value: c.date(e.Date)},
			{Label: "Vendor", Value: c.Cache.VendorName(e.VendorID)},
			{Label: "Category", Value: string(e.Category)},
			{Label: "Description", Value: e.Description},
			{Label: "Total", Value: c.money(e.Total)},
			{Label: "Balance", Value: c.money(e.Balance), Tone: balanceTone(e)},
			{Label: "Status", Value: string(e.Status), Tone: render.StatusTone(string(e.Status))},
		},
		CanEdit:   true,
		CanDelete: true,
	}, nil
}

func balanceTone(e model.Expense) render.Tone {
	if e.Balance.IsPositive() {
		return render.ToneNegative
	}
	return render.TonePositive
}

// Form returns the expense form, pre-filled when id is set.
func (c *Expenses) Form(ctx context.Context, id string) (*render.Form, error) {
	var existing model.Expense
	if id != "" {
		e, found, err := api.Get[model.Expense](ctx, c.Client, api.Expenses, id)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, notFound("Expense")
		}
		existing = e
	}

	categories := make([]lookup.Option, len(model.Categories))
	for i, cat := range model.Categories {
		categories[i] = lookup.Option{Value: string(cat), Label: string(cat)}
	}
	date := existing.Date
	if date == "" {
		date = model.Today()
	}
	total := ""
	if id != "" {
		total = money.Plain(existing.Total)
	}
	category := string(existing.Category)
	if category == "" {
		category = string(model.CategoryPoultry)
	}

	title := "New Expense"
	if id != "" {
		title = "Edit Expense"
	}
	return &render.Form{
		Title: title,
		Fields: []render.Field{
			{Key: "vendorId", Label: "Vendor", Kind: render.FieldSelect, Value: existing.VendorID, Options: c.Cache.VendorOptions()},
			{Key: "date", Label: "Date", Kind: render.FieldDate, Value: date, Placeholder: model.DateLayout},
			{Key: "total", Label: "Total Amount", Kind: render.FieldNumber, Value: total, Placeholder: "0.00"},
			{Key: "category", Label: "Category", Kind: render.FieldSelect, Value: category, Options: categories},
			{Key: "description", Label: "Description", Value: existing.Description},
		},
		Save: func(ctx context.Context, f *render.Form) error {
			return c.save(ctx, id, f)
		},
	}, nil
}

func (c *Expenses) save(ctx context.Context, id string, f *render.Form) error {
	total, ok := money.Parse(f.Value("total"))
	if !ok || !total.IsPositive() {
		return ErrInvalidAmount
	}
	e := model.Expense{
		ID:          id,
		VendorID:    f.Value("vendorId"),
		Date:        f.Value("date"),
		Category:    model.Category(f.Value("category")),
		Description: f.Value("description"),
		Total:       total,
		Balance:     total,
		Status:      model.StatusUnpaid,
	}
	if e.ID == "" {
		e.ID = model.NewID(model.PrefixExpense)
	}
	if err := model.Validate(e); err != nil {
		return err
	}

	var err error
	if id == "" {
		_, err = api.Create[model.Expense](ctx, c.Client, api.Expenses, e)
	} else {
		_, err = api.Update[model.Expense](ctx, c.Client, api.Expenses, id, e)
	}
	return err
}

func (c *Expenses) Delete(ctx context.Context, id string) error {
	return c.Client.Delete(ctx, api.Expenses, id)
}
