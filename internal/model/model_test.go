package model

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestParseRefs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Allocation
	}{
		{name: "empty", raw: ``, want: nil},
		{name: "null", raw: `null`, want: nil},
		{name: "list of objects", raw: `[{"id":"AEX-100001","amount":500}]`, want: []Allocation{{ExpenseID: "AEX-100001", Amount: d("500")}}},
		{name: "serialized list", raw: `"[{\"id\":\"AEX-1\",\"amount\":\"20.5\"}]"`, want: []Allocation{{ExpenseID: "AEX-1", Amount: d("20.5")}}},
		{name: "bare ids", raw: `["AEX-1","AEX-2"]`, want: []Allocation{{ExpenseID: "AEX-1"}, {ExpenseID: "AEX-2"}}},
		{name: "blank string", raw: `"  "`, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRefs(json.RawMessage(tt.raw))
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].ExpenseID, got[i].ExpenseID)
				assert.True(t, tt.want[i].Amount.Equal(got[i].Amount), "amount %s", got[i].Amount)
			}
		})
	}
}

func TestParseRefsCorrupt(t *testing.T) {
	for _, raw := range []string{`"not json"`, `{"id":"x"}`, `[1,`} {
		_, err := ParseRefs(json.RawMessage(raw))
		require.Error(t, err, raw)
	}
}

func TestPaymentReferencesFallsBackToAllocations(t *testing.T) {
	p := Payment{Allocations: []Allocation{{ExpenseID: "AEX-1", Amount: d("10")}}}
	refs, err := p.References()
	require.NoError(t, err)
	require.Len(t, refs, 1)
	require.Equal(t, "AEX-1", refs[0].ExpenseID)
}

func TestPaymentDecodesStringAmounts(t *testing.T) {
	var p Payment
	require.NoError(t, json.Unmarshal([]byte(`{"id":"PAY-1","amount":"700","refs":"[]"}`), &p))
	require.True(t, d("700").Equal(p.Amount))
	refs, err := p.References()
	require.NoError(t, err)
	require.Empty(t, refs)
}

func TestAmountsEncodeAsNumbers(t *testing.T) {
	b, err := json.Marshal(Allocation{ExpenseID: "AEX-1", Amount: d("12.5")})
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"AEX-1","amount":12.5}`, string(b))
}

func TestDebtAndUnpaid(t *testing.T) {
	expenses := []Expense{
		{ID: "a", VendorID: "V1", Balance: d("500"), Status: StatusUnpaid},
		{ID: "b", VendorID: "V1", Balance: d("0"), Status: StatusPaid},
		{ID: "c", VendorID: "V2", Balance: d("50"), Status: StatusUnpaid},
		{ID: "e", VendorID: "V1", Balance: d("300"), Status: StatusPartial},
	}
	require.True(t, d("800").Equal(Debt("V1", expenses)))
	unpaid := Unpaid("V1", expenses)
	require.Len(t, unpaid, 2)
	require.Equal(t, "a", unpaid[0].ID)
	require.Equal(t, "e", unpaid[1].ID)
	require.True(t, Debt("V9", expenses).IsZero())
}

func TestNewID(t *testing.T) {
	re := regexp.MustCompile(`^VND-[1-9][0-9]{5}$`)
	for i := 0; i < 200; i++ {
		require.Regexp(t, re, NewID(PrefixVendor))
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "01 Mar 2024", FormatDate("2024-03-01", "02 Jan 2006"))
	assert.Equal(t, "01 Mar 2024", FormatDate("2024-03-01T10:00:00Z", "02 Jan 2006"))
	assert.Equal(t, "2024-03-01", FormatDate("2024-03-01", ""))
	assert.Equal(t, "last week", FormatDate("last week", "02 Jan 2006"))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(Expense{Total: d("10"), Balance: d("10"), Category: CategoryFeed}))
	require.EqualError(t, Validate(Expense{Total: d("0")}), "total must be greater than 0")
	require.EqualError(t, Validate(Expense{Total: d("5"), Category: "Snacks"}), "category must be one of: Poultry, Logistics, Feed, Utilities, Other")
	require.EqualError(t, Validate(Vendor{}), "name is required")
	require.EqualError(t, Validate(Wallet{Name: "Cash", Balance: d("-1")}), "balance must be at least 0")

	req := TransferRequest{Type: TransferPayment, VendorID: "V", WalletID: "W", Amount: d("10")}
	require.EqualError(t, Validate(req), "allocations is required")
	req.Allocations = []Allocation{{ExpenseID: "AEX-1", Amount: d("10")}}
	require.NoError(t, Validate(req))

	dep := TransferRequest{Type: TransferDeposit, VendorID: "V", WalletID: "W", Amount: d("10")}
	require.NoError(t, Validate(dep))
}

func TestSyncDiffResourcesOrder(t *testing.T) {
	diff := SyncDiff{Details: map[string]ResourceDiff{
		"Deposits": {Push: 1}, "Vendors": {Push: 2}, "Archive": {}, "Expenses": {Push: 3},
	}}
	var names []string
	for _, r := range diff.Resources() {
		names = append(names, r.Name)
	}
	require.Equal(t, []string{"Vendors", "Expenses", "Deposits", "Archive"}, names)
}

func TestLastSyncWhen(t *testing.T) {
	_, ok := LastSync{}.When()
	require.False(t, ok)
	ts := "2026-03-01T10:15:30.123456"
	got, ok := LastSync{Time: &ts}.When()
	require.True(t, ok)
	require.Equal(t, 2026, got.Year())
}
