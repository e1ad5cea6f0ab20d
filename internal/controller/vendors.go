package controller

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jask/bookkeep/internal/api"
	"github.com/jask/bookkeep/internal/model"
	"github.com/jask/bookkeep/internal/render"
)

// Vendors manages suppliers and shows what is owed to each.
type Vendors struct {
	Deps
}

func (c *Vendors) List(ctx context.Context) (render.Table, error) {
	var (
		vendors  []model.Vendor
		expenses []model.Expense
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		vendors, err = api.List[model.Vendor](gctx, c.Client, api.Vendors)
		return err
	})
	g.Go(func() (err error) {
		expenses, err = api.List[model.Expense](gctx, c.Client, api.Expenses)
		return err
	})
	if err := g.Wait(); err != nil {
		return render.Table{}, err
	}

	t := render.Table{
		Columns:      []string{"ID", "Name", "Address", "Balance Due"},
		StatusColumn: -1,
		Empty:        "No vendors yet.",
	}
	for _, v := range vendors {
		t.Rows = append(t.Rows, render.Row{
			ID:    v.ID,
			Cells: []string{v.ID, v.Name, v.Address, c.money(model.Debt(v.ID, expenses))},
		})
	}
	return t, nil
}

func (c *Vendors) Detail(ctx context.Context, id string) (render.Detail, error) {
	v, found, err := api.Get[model.Vendor](ctx, c.Client, api.Vendors, id)
	if err != nil {
		return render.Detail{}, err
	}
	if !found {
		return render.Detail{}, notFound("Vendor")
	}
	expenses, err := api.List[model.Expense](ctx, c.Client, api.Expenses)
	if err != nil {
		return render.Detail{}, err
	}

	debt := model.Debt(v.ID, expenses)
	tone := render.TonePositive
	if debt.IsPositive() {
		tone = render.ToneNegative
	}
	unpaid := render.Section{Title: "Unpaid Expenses", Empty: "No outstanding bills."}
	for _, e := range model.Unpaid(v.ID, expenses) {
		unpaid.Items = append(unpaid.Items, render.Pair{
			Label: fmt.Sprintf("%s  %s  %s", c.date(e.Date), e.ID, e.Category),
			Value: c.money(e.Balance),
			Tone:  render.StatusTone(string(e.Status)),
		})
	}

	return render.Detail{
		ID:    v.ID,
		Title: v.Name,
		Fields: []render.Pair{
			{Label: "Phone", Value: v.Phone},
			{Label: "Address", Value: v.Address},
			{Label: "Total Debt", Value: c.money(debt), Tone: tone},
		},
		Sections:  []render.Section{unpaid},
		CanEdit:   true,
		CanDelete: true,
	}, nil
}

func (c *Vendors) Form(ctx context.Context, id string) (*render.Form, error) {
	var existing model.Vendor
	title := "Add Vendor"
	if id != "" {
		v, found, err := api.Get[model.Vendor](ctx, c.Client, api.Vendors, id)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, notFound("Vendor")
		}
		existing = v
		title = "Edit Vendor"
	}
	return &render.Form{
		Title: title,
		Fields: []render.Field{
			{Key: "name", Label: "Vendor Name", Value: existing.Name},
			{Key: "address", Label: "Address", Value: existing.Address},
			{Key: "phone", Label: "Phone", Value: existing.Phone},
		},
		Save: func(ctx context.Context, f *render.Form) error {
			return c.save(ctx, id, f)
		},
	}, nil
}

func (c *Vendors) save(ctx context.Context, id string, f *render.Form) error {
	v := model.Vendor{
		ID:      id,
		Name:    f.Value("name"),
		Address: f.Value("address"),
		Phone:   f.Value("phone"),
	}
	if err := model.Validate(v); err != nil {
		return err
	}

	var err error
	if id == "" {
		v.ID = model.NewID(model.PrefixVendor)
		_, err = api.Create[model.Vendor](ctx, c.Client, api.Vendors, v)
	} else {
		_, err = api.Update[model.Vendor](ctx, c.Client, api.Vendors, id, v)
	}
	if err != nil {
		return err
	}
	c.refresh(ctx)
	return nil
}

func (c *Vendors) Delete(ctx context.Context, id string) error {
	if err := c.Client.Delete(ctx, api.Vendors, id); err != nil {
		return err
	}
	c.refresh(ctx)
	return nil
}
