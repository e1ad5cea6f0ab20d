// Package export writes the ledger to an xlsx workbook.
package export

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/jask/bookkeep/internal/api"
	"github.com/jask/bookkeep/internal/model"
)

// Ledger is everything a workbook holds.
type Ledger struct {
	Vendors  []model.Vendor
	Wallets  []model.Wallet
	Expenses []model.Expense
	Payments []model.Payment
}

// Names resolves vendor and wallet ids. *lookup.Cache satisfies it.
type Names interface {
	VendorName(id string) string
	WalletName(id string) string
}

// Load fetches every collection concurrently.
func Load(ctx context.Context, c *api.Client) (Ledger, error) {
	var l Ledger
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		l.Vendors, err = api.List[model.Vendor](ctx, c, api.Vendors)
		return err
	})
	g.Go(func() (err error) {
		l.Wallets, err = api.List[model.Wallet](ctx, c, api.Wallets)
		return err
	})
	g.Go(func() (err error) {
		l.Expenses, err = api.List[model.Expense](ctx, c, api.Expenses)
		return err
	})
	g.Go(func() (err error) {
		l.Payments, err = api.List[model.Payment](ctx, c, api.Payments)
		return err
	})
	if err := g.Wait(); err != nil {
		return Ledger{}, err
	}
	return l, nil
}

// Sheet names in workbook order.
const (
	SheetExpenses = "Expenses"
	SheetVendors  = "Vendors"
	SheetWallets  = "Wallets"
	SheetPayments = "Payments"
)

type sheet struct {
	name    string
	headers []string
	rows    [][]any
	money   []int // zero-based columns holding amounts
}

// Workbook builds the xlsx file for l.
func Workbook(l Ledger, names Names) (*excelize.File, error) {
	sheets := []sheet{
		expenseSheet(l, names),
		vendorSheet(l),
		walletSheet(l),
		paymentSheet(l, names),
	}

	f := excelize.NewFile()
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6FA"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, fmt.Errorf("amount style: %w", err)
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", s.name, err)
		}
		if err := writeSheet(f, s, header, amount); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", s.name, err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, s sheet, header, amount int) error {
	for i, h := range s.headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(s.name, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetRowStyle(s.name, 1, 1, header); err != nil {
		return err
	}

	for r, values := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &values); err != nil {
			return err
		}
	}

	last, err := excelize.ColumnNumberToName(len(s.headers))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(s.name, "A", last, 18); err != nil {
		return err
	}
	if len(s.rows) == 0 {
		return nil
	}
	for _, col := range s.money {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(s.name, name+"2", fmt.Sprintf("%s%d", name, len(s.rows)+1), amount); err != nil {
			return err
		}
	}
	return nil
}

func expenseSheet(l Ledger, names Names) sheet {
	s := sheet{
		name:    SheetExpenses,
		headers: []string{"ID", "Vendor", "Date", "Category", "Description", "Total", "Balance", "Status"},
		money:   []int{5, 6},
	}
	for _, e := range l.Expenses {
		total, _ := e.Total.Float64()
		balance, _ := e.Balance.Float64()
		s.rows = append(s.rows, []any{e.ID, names.VendorName(e.VendorID), e.Date, string(e.Category), e.Description, total, balance, string(e.Status)})
	}
	return s
}

func vendorSheet(l Ledger) sheet {
	s := sheet{
		name:    SheetVendors,
		headers: []string{"ID", "Name", "Address", "Phone", "Balance Due"},
		money:   []int{4},
	}
	for _, v := range l.Vendors {
		debt, _ := model.Debt(v.ID, l.Expenses).Float64()
		s.rows = append(s.rows, []any{v.ID, v.Name, v.Address, v.Phone, debt})
	}
	return s
}

func walletSheet(l Ledger) sheet {
	s := sheet{
		name:    SheetWallets,
		headers: []string{"ID", "Name", "Currency", "Balance"},
		money:   []int{3},
	}
	for _, w := range l.Wallets {
		balance, _ := w.Balance.Float64()
		s.rows = append(s.rows, []any{w.ID, w.Name, w.Currency, balance})
	}
	return s
}

func paymentSheet(l Ledger, names Names) sheet {
	s := sheet{
		name:    SheetPayments,
		headers: []string{"ID", "Date", "Vendor", "Wallet", "Amount", "Applied To"},
		money:   []int{4},
	}
	for _, p := range l.Payments {
		amount, _ := p.Amount.Float64()
		var applied []string
		if refs, err := p.References(); err == nil {
			for _, r := range refs {
				applied = append(applied, r.ExpenseID)
			}
		}
		s.rows = append(s.rows, []any{p.ID, p.Date, names.VendorName(p.VendorID), names.WalletName(p.WalletID), amount, strings.Join(applied, ", ")})
	}
	return s
}

// Write builds the workbook and writes it to w.
func Write(w io.Writer, l Ledger, names Names) error {
	f, err := Workbook(l, names)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
