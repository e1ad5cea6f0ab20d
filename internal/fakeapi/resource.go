package fakeapi

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/jask/bookkeep/internal/model"
)

// resource describes one collection and how its records are built.
type resource[T any] struct {
	path    string
	label   string
	listKey string
	itemKey string
	items   func(*Data) *[]T
	id      func(*T) *string

	// build turns a decoded POST body into the stored record. nil disables POST.
	build func(b *Backend, in T) (T, error)
	// patch enables PATCH.
	patch bool
	// delete enables DELETE.
	delete bool
}

func (b *Backend) registerCollections(g *gin.RouterGroup) {
	mount(b, g, resource[model.Vendor]{
		path: "vendors", label: "Vendor", listKey: "vendors", itemKey: "vendor",
		items: func(d *Data) *[]model.Vendor { return &d.Vendors },
		id:    func(v *model.Vendor) *string { return &v.ID },
		build: func(_ *Backend, in model.Vendor) (model.Vendor, error) {
			if in.Name == "" {
				return in, &appError{code: 1001, msg: "Vendor name is required"}
			}
			if in.ID == "" {
				in.ID = model.NewID(model.PrefixVendor)
			}
			return in, nil
		},
		patch: true, delete: true,
	})
	mount(b, g, resource[model.Wallet]{
		path: "wallets", label: "Wallet", listKey: "wallets", itemKey: "wallet",
		items: func(d *Data) *[]model.Wallet { return &d.Wallets },
		id:    func(w *model.Wallet) *string { return &w.ID },
		build: func(_ *Backend, in model.Wallet) (model.Wallet, error) {
			if in.Name == "" {
				return in, &appError{code: 1001, msg: "Wallet name is required"}
			}
			if in.ID == "" {
				in.ID = model.NewID(model.PrefixWallet)
			}
			if in.Currency == "" {
				in.Currency = model.DefaultCurrency
			}
			return in, nil
		},
		patch: true, delete: true,
	})
	mount(b, g, resource[model.Expense]{
		path: "expenses", label: "Expense", listKey: "expenses", itemKey: "expense",
		items: func(d *Data) *[]model.Expense { return &d.Expenses },
		id:    func(e *model.Expense) *string { return &e.ID },
		build: func(b *Backend, in model.Expense) (model.Expense, error) {
			if in.ID == "" {
				in.ID = model.NewID(model.PrefixExpense)
			}
			if in.Date == "" {
				in.Date = b.today()
			}
			if in.Category == "" {
				in.Category = model.CategoryOther
			}
			in.Balance = in.Total
			in.Status = model.StatusUnpaid
			return in, nil
		},
		patch: true, delete: true,
	})
	mount(b, g, resource[model.Payment]{
		path: "payments", label: "Payment", listKey: "payments", itemKey: "payment",
		items:  func(d *Data) *[]model.Payment { return &d.Payments },
		id:     func(p *model.Payment) *string { return &p.ID },
		delete: true,
	})
	mount(b, g, resource[model.Deposit]{
		path: "deposits", label: "Deposit", listKey: "deposits", itemKey: "deposit",
		items:  func(d *Data) *[]model.Deposit { return &d.Deposits },
		id:     func(d *model.Deposit) *string { return &d.ID },
		delete: true,
	})
}

type appError struct {
	code int
	msg  string
}

func (e *appError) Error() string { return e.msg }

func fail(c *gin.Context, err error) {
	var ae *appError
	if errors.As(err, &ae) {
		respond(c, ae.code, ae.msg, nil)
		return
	}
	respond(c, 500, err.Error(), nil)
}

func find[T any](items []T, id func(*T) *string, want string) int {
	for i := range items {
		if *id(&items[i]) == want {
			return i
		}
	}
	return -1
}

func mount[T any](b *Backend, g *gin.RouterGroup, r resource[T]) {
	g.GET("/"+r.path, func(c *gin.Context) {
		b.mu.Lock()
		list := append([]T{}, *r.items(&b.data)...)
		b.mu.Unlock()
		respond(c, 0, "success", gin.H{r.listKey: list})
	})

	g.GET("/"+r.path+"/:id", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		items := *r.items(&b.data)
		i := find(items, r.id, c.Param("id"))
		if i < 0 {
			respond(c, 404, r.label+" not found", nil)
			return
		}
		respond(c, 0, "success", gin.H{r.itemKey: items[i]})
	})

	if r.build != nil {
		g.POST("/"+r.path, func(c *gin.Context) {
			var in T
			if err := c.ShouldBindJSON(&in); err != nil {
				respond(c, 1000, "Invalid request body", nil)
				return
			}
			b.mu.Lock()
			defer b.mu.Unlock()
			rec, err := r.build(b, in)
			if err != nil {
				fail(c, err)
				return
			}
			items := r.items(&b.data)
			*items = append(*items, rec)
			b.markPending(sheetName(r.path))
			respond(c, 0, r.label+" created", gin.H{r.itemKey: rec})
		})
	}

	if r.patch {
		g.PATCH("/"+r.path+"/:id", func(c *gin.Context) {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				respond(c, 1000, "Invalid request body", nil)
				return
			}
			b.mu.Lock()
			defer b.mu.Unlock()
			items := r.items(&b.data)
			i := find(*items, r.id, c.Param("id"))
			if i < 0 {
				respond(c, 404, r.label+" not found", nil)
				return
			}
			updated, err := merge((*items)[i], body)
			if err != nil {
				respond(c, 1000, "Invalid request body", nil)
				return
			}
			*r.id(&updated) = c.Param("id")
			(*items)[i] = updated
			b.markPending(sheetName(r.path))
			respond(c, 0, r.label+" updated", gin.H{r.itemKey: updated})
		})
	}

	if r.delete {
		g.DELETE("/"+r.path+"/:id", func(c *gin.Context) {
			id := c.Param("id")
			b.mu.Lock()
			defer b.mu.Unlock()
			items := r.items(&b.data)
			i := find(*items, r.id, id)
			if i < 0 {
				respond(c, 404, r.label+" not found", nil)
				return
			}
			if b.opts.CheckDependencies {
				if err := b.checkDependencies(r.path, id); err != nil {
					fail(c, err)
					return
				}
			}
			b.revert(r.path, id)
			*items = append((*items)[:i], (*items)[i+1:]...)
			b.markPending(sheetName(r.path))
			respond(c, 0, r.label+" deleted", nil)
		})
	}
}

// merge overlays a JSON patch onto rec.
func merge[T any](rec T, patch []byte) (T, error) {
	base, err := json.Marshal(rec)
	if err != nil {
		return rec, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &fields); err != nil {
		return rec, err
	}
	changes := map[string]json.RawMessage{}
	if err := json.Unmarshal(patch, &changes); err != nil {
		return rec, err
	}
	for k, v := range changes {
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return rec, err
	}
	var out T
	if err := json.Unmarshal(merged, &out); err != nil {
		return rec, err
	}
	return out, nil
}
