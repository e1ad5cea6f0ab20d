package transfer

import (
	"errors"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/jask/bookkeep/internal/model"
)

func bills() []model.Expense {
	return []model.Expense{
		{ID: "AEX-1", VendorID: "VND-1", Date: "2024-01-02", Category: model.CategoryFeed, Balance: decimal.NewFromInt(500), Status: model.StatusUnpaid},
		{ID: "AEX-2", VendorID: "VND-2", Date: "2024-01-03", Balance: decimal.NewFromInt(90), Status: model.StatusUnpaid},
		{ID: "AEX-3", VendorID: "VND-1", Date: "2024-01-04", Balance: decimal.Zero, Status: model.StatusPaid},
		{ID: "AEX-4", VendorID: "VND-1", Date: "2024-01-05", Category: model.CategoryLogistics, Balance: decimal.NewFromInt(300), Status: model.StatusPartial},
	}
}

func paymentForm() *Form {
	f := NewForm("₦")
	f.SelectWallet("WLT-1")
	f.SelectVendor("VND-1", bills())
	return f
}

func rowTexts(f *Form) []string {
	out := make([]string, len(f.Rows))
	for i, r := range f.Rows {
		out[i] = r.Text
	}
	return out
}

func TestSelectVendorLoadsOutstandingInOrder(t *testing.T) {
	f := paymentForm()
	require.Len(t, f.Rows, 2)
	assert.Equal(t, "AEX-1", f.Rows[0].ExpenseID)
	assert.Equal(t, "AEX-4", f.Rows[1].ExpenseID)
	assert.True(t, f.Rows[1].Max.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, []string{"", ""}, rowTexts(f))
	assert.True(t, f.Total().IsZero())
}

func TestSelectVendorResetsInputs(t *testing.T) {
	f := paymentForm()
	f.ToggleFullPay()
	f.SelectVendor("VND-2", bills())

	assert.False(t, f.FullPay)
	assert.Empty(t, f.AmountText)
	require.Len(t, f.Rows, 1)
	assert.True(t, f.Total().IsZero())
}

func TestAggregateAmountFillsGreedily(t *testing.T) {
	f := paymentForm()

	f.SetAmountInput("700")
	assert.Equal(t, []string{"500", "200"}, rowTexts(f))
	assert.True(t, f.Total().Equal(decimal.NewFromInt(700)))

	f.SetAmountInput("1000")
	assert.Equal(t, []string{"500", "300"}, rowTexts(f))
	assert.True(t, f.Total().Equal(decimal.NewFromInt(800)))

	f.SetAmountInput("120.5")
	assert.Equal(t, []string{"120.5", ""}, rowTexts(f))

	f.SetAmountInput("abc")
	assert.Equal(t, []string{"", ""}, rowTexts(f))
}

func TestFractionalAmountsKeepPrecision(t *testing.T) {
	odd := decimal.RequireFromString("33.335")
	f := NewForm("₦")
	f.SelectVendor("VND-1", []model.Expense{
		{ID: "AEX-1", VendorID: "VND-1", Balance: odd, Status: model.StatusUnpaid},
	})

	f.SetRowInput(0, "50")
	assert.Equal(t, "33.335", f.Rows[0].Text)
	assert.True(t, f.Rows[0].Value().Equal(odd))

	f.SetRowInput(0, "")
	f.ToggleFullPay()
	assert.Equal(t, "33.335", f.Rows[0].Text)
	assert.Equal(t, "33.335", f.AmountText)
	assert.True(t, f.Total().Equal(odd))

	g := NewForm("₦")
	g.SelectVendor("VND-1", []model.Expense{
		{ID: "AEX-9", VendorID: "VND-1", Balance: decimal.NewFromInt(500), Status: model.StatusUnpaid},
	})
	g.SetAmountInput("100.005")
	assert.Equal(t, []string{"100.005"}, rowTexts(g))
	assert.True(t, g.Total().Equal(decimal.RequireFromString("100.005")))
}

func TestFullPayToggle(t *testing.T) {
	f := paymentForm()

	f.ToggleFullPay()
	assert.True(t, f.FullPay)
	assert.False(t, f.AmountEnabled())
	assert.Equal(t, []string{"500", "300"}, rowTexts(f))
	assert.Equal(t, "800", f.AmountText)

	f.SetAmountInput("5")
	assert.Equal(t, "800", f.AmountText)
	assert.Equal(t, []string{"500", "300"}, rowTexts(f))

	f.ToggleFullPay()
	assert.False(t, f.FullPay)
	assert.True(t, f.AmountEnabled())
	assert.Equal(t, []string{"", ""}, rowTexts(f))
	assert.Empty(t, f.AmountText)
}

func TestRowInputClamps(t *testing.T) {
	f := paymentForm()

	f.SetRowInput(0, "650")
	assert.Equal(t, "500", f.Rows[0].Text)
	f.SetRowInput(1, "12.5")
	assert.Equal(t, "12.5", f.Rows[1].Text)
	f.SetRowInput(1, "-4")
	assert.Equal(t, "", f.Rows[1].Text)
	f.SetRowInput(7, "1")

	assert.True(t, f.Total().Equal(decimal.NewFromInt(500)))
}

func TestModeSwitch(t *testing.T) {
	f := paymentForm()
	f.SetAmountInput("100")

	f.SetMode(Deposit)
	assert.Equal(t, "Source Vendor", f.VendorLabel())
	assert.Equal(t, "Target Wallet", f.WalletLabel())
	assert.False(t, f.ShowBills())
	assert.Empty(t, f.AmountText)
	assert.Empty(t, f.Rows)
	assert.Equal(t, "VND-1", f.VendorID)
	assert.Equal(t, "WLT-1", f.WalletID)

	f.SetAmountInput("250")
	assert.True(t, f.Total().Equal(decimal.NewFromInt(250)))

	f.SetMode(Payment)
	assert.Equal(t, "Target Vendor", f.VendorLabel())
	assert.Equal(t, "Source Wallet", f.WalletLabel())
	assert.True(t, f.AmountEnabled())
	require.Len(t, f.Rows, 2)
	assert.Equal(t, []string{"", ""}, rowTexts(f))
}

func TestDepositModeLoadsNoRows(t *testing.T) {
	f := NewForm("₦")
	f.SetMode(Deposit)
	f.SelectVendor("VND-1", bills())
	assert.Empty(t, f.Rows)
}

func TestSubmitValidation(t *testing.T) {
	t.Run("no vendor", func(t *testing.T) {
		f := NewForm("₦")
		_, err := f.Submit(decimal.NewFromInt(1000))
		assert.ErrorIs(t, err, ErrNoVendor)
		assert.Equal(t, "Please select a vendor.", err.Error())
	})
	t.Run("no wallet", func(t *testing.T) {
		f := NewForm("₦")
		f.SelectVendor("VND-1", bills())
		_, err := f.Submit(decimal.NewFromInt(1000))
		assert.ErrorIs(t, err, ErrNoWallet)
	})
	t.Run("nothing allocated", func(t *testing.T) {
		f := paymentForm()
		_, err := f.Submit(decimal.NewFromInt(1000))
		assert.Equal(t, "Please allocate an amount.", err.Error())
	})
	t.Run("insufficient funds", func(t *testing.T) {
		f := paymentForm()
		f.SetAmountInput("700")
		_, err := f.Submit(decimal.NewFromInt(699))
		require.Error(t, err)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "Insufficient funds. Need ₦ 700.00.", verr.Message)
	})
	t.Run("exact balance proceeds", func(t *testing.T) {
		f := paymentForm()
		f.SetAmountInput("700")
		req, err := f.Submit(decimal.NewFromInt(700))
		require.NoError(t, err)
		assert.Equal(t, model.TransferPayment, req.Type)
		assert.True(t, req.Amount.Equal(decimal.NewFromInt(700)))
		require.Len(t, req.Allocations, 2)
		assert.Equal(t, "AEX-4", req.Allocations[1].ExpenseID)
		assert.True(t, req.Allocations[1].Amount.Equal(decimal.NewFromInt(200)))
	})
	t.Run("deposit needs amount", func(t *testing.T) {
		f := paymentForm()
		f.SetMode(Deposit)
		_, err := f.Submit(decimal.Zero)
		assert.Equal(t, "Please enter a valid amount.", err.Error())
	})
	t.Run("deposit ignores wallet balance", func(t *testing.T) {
		f := paymentForm()
		f.SetMode(Deposit)
		f.SetAmountInput("50")
		req, err := f.Submit(decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, model.TransferDeposit, req.Type)
		assert.Empty(t, req.Allocations)
	})
}

// fractional draws an amount in [lo, hi] with zero to three fraction digits.
func fractional(t *rapid.T, lo, hi int64, label string) decimal.Decimal {
	places := rapid.Int32Range(0, 3).Draw(t, label+"_places")
	scale := decimal.New(1, places)
	units := rapid.Int64Range(lo*scale.IntPart(), hi*scale.IntPart()).Draw(t, label)
	return decimal.New(units, -places)
}

// Any interleaving of edits keeps every row within its balance and the total
// equal to the sum of rows. Aggregate entry totals min(A, sum of balances).
func TestFormEditSequences(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 6).Draw(t, "rows")
		var expenses []model.Expense
		for i := 0; i < n; i++ {
			expenses = append(expenses, model.Expense{
				ID:       "AEX-" + strconv.Itoa(i),
				VendorID: "VND-1",
				Balance:  fractional(t, 1, 5000, "balance"),
				Status:   model.StatusUnpaid,
			})
		}
		f := NewForm("₦")
		f.SelectVendor("VND-1", expenses)

		balances := decimal.Zero
		for _, e := range expenses {
			balances = balances.Add(e.Balance)
		}

		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for s := 0; s < steps; s++ {
			switch rapid.IntRange(0, 3).Draw(t, "op") {
			case 0:
				amount := fractional(t, -100, 40000, "amount")
				f.SetAmountInput(amount.String())
				want := decimal.Min(decimal.Max(amount, decimal.Zero), balances)
				if f.Mode == Payment && !f.FullPay && !f.Total().Equal(want) {
					t.Fatalf("aggregate %s over %s: total %s, want %s", amount, balances, f.Total(), want)
				}
			case 1:
				if n > 0 {
					f.SetRowInput(rapid.IntRange(0, n-1).Draw(t, "row"), fractional(t, -100, 8000, "value").String())
				}
			case 2:
				f.ToggleFullPay()
			case 3:
				if rapid.Bool().Draw(t, "deposit") {
					f.SetMode(Deposit)
				} else {
					f.SetMode(Payment)
				}
			}

			sum := decimal.Zero
			for _, r := range f.Rows {
				if r.Value().GreaterThan(r.Max) || r.Value().IsNegative() {
					t.Fatalf("row %s value %s outside [0, %s]", r.ExpenseID, r.Value(), r.Max)
				}
				sum = sum.Add(r.Value())
			}
			if f.Mode == Payment && !f.Total().Equal(sum) {
				t.Fatalf("total %s != row sum %s", f.Total(), sum)
			}
		}
	})
}
