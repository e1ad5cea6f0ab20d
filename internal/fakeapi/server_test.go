package fakeapi

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/bookkeep/internal/api"
	"github.com/jask/bookkeep/internal/model"
)

func start(t *testing.T, opts Options, seed Data) (*Backend, *api.Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	b := New(opts)
	b.Seed(seed)
	srv := httptest.NewServer(b.Handler())
	t.Cleanup(srv.Close)
	return b, api.New(srv.URL+"/v1", time.Second, zerolog.Nop())
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func ledger() Data {
	return Data{
		Vendors: []model.Vendor{{ID: "VND-1", Name: "Acme"}},
		Wallets: []model.Wallet{{ID: "WLT-1", Name: "Cash", Currency: "NGN", Balance: dec(1000)}},
		Expenses: []model.Expense{
			{ID: "AEX-1", VendorID: "VND-1", Total: dec(500), Balance: dec(500), Status: model.StatusUnpaid},
			{ID: "AEX-2", VendorID: "VND-1", Total: dec(300), Balance: dec(300), Status: model.StatusUnpaid},
		},
	}
}

func TestCRUDRoundTrip(t *testing.T) {
	_, c := start(t, Options{}, Data{})
	ctx := context.Background()

	v, err := api.Create[model.Vendor](ctx, c, api.Vendors, model.Vendor{ID: "VND-100001", Name: "Feeds Ltd"})
	require.NoError(t, err)
	assert.Equal(t, "VND-100001", v.ID)

	v, err = api.Update[model.Vendor](ctx, c, api.Vendors, v.ID, map[string]string{"phone": "0803"})
	require.NoError(t, err)
	assert.Equal(t, "Feeds Ltd", v.Name)
	assert.Equal(t, "0803", v.Phone)

	got, found, err := api.Get[model.Vendor](ctx, c, api.Vendors, v.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "0803", got.Phone)

	require.NoError(t, c.Delete(ctx, api.Vendors, v.ID))
	_, _, err = api.Get[model.Vendor](ctx, c, api.Vendors, v.ID)
	assert.EqualError(t, err, "Vendor not found")
}

func TestCreateVendorRequiresName(t *testing.T) {
	_, c := start(t, Options{}, Data{})
	_, err := api.Create[model.Vendor](context.Background(), c, api.Vendors, model.Vendor{})
	assert.EqualError(t, err, "Vendor name is required")
}

func TestExpenseCreateInitialisesBalance(t *testing.T) {
	_, c := start(t, Options{}, Data{})
	e, err := api.Create[model.Expense](context.Background(), c, api.Expenses, map[string]any{
		"vendorId": "VND-1", "total": 250, "balance": 0, "status": "Paid",
	})
	require.NoError(t, err)
	assert.True(t, e.Balance.Equal(dec(250)))
	assert.Equal(t, model.StatusUnpaid, e.Status)
	assert.Equal(t, model.CategoryOther, e.Category)
	assert.NotEmpty(t, e.Date)
}

func TestPaymentAppliesAllocations(t *testing.T) {
	b, c := start(t, Options{}, ledger())
	ctx := context.Background()

	p, err := api.Create[model.Payment](ctx, c, api.Payments, model.TransferRequest{
		Type: model.TransferPayment, VendorID: "VND-1", WalletID: "WLT-1", Amount: dec(700),
		Allocations: []model.Allocation{{ExpenseID: "AEX-1", Amount: dec(500)}, {ExpenseID: "AEX-2", Amount: dec(200)}},
	})
	require.NoError(t, err)
	assert.Regexp(t, `^PAY-\d{6}$`, p.ID)

	snap := b.Snapshot()
	assert.True(t, snap.Wallets[0].Balance.Equal(dec(300)))
	assert.Equal(t, model.StatusPaid, snap.Expenses[0].Status)
	assert.Equal(t, model.StatusPartial, snap.Expenses[1].Status)
	assert.True(t, snap.Expenses[1].Balance.Equal(dec(100)))

	refs, err := snap.Payments[0].References()
	require.NoError(t, err)
	assert.Len(t, refs, 2)

	require.NoError(t, c.Delete(ctx, api.Payments, p.ID))
	snap = b.Snapshot()
	assert.True(t, snap.Wallets[0].Balance.Equal(dec(1000)))
	assert.Equal(t, model.StatusUnpaid, snap.Expenses[0].Status)
	assert.True(t, snap.Expenses[1].Balance.Equal(dec(300)))
}

func TestPaymentInsufficientFunds(t *testing.T) {
	_, c := start(t, Options{}, ledger())
	_, err := api.Create[model.Payment](context.Background(), c, api.Payments, model.TransferRequest{
		Type: model.TransferPayment, VendorID: "VND-1", WalletID: "WLT-1", Amount: dec(5000),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Insufficient funds")
}

func TestDepositThroughPayments(t *testing.T) {
	b, c := start(t, Options{}, ledger())
	d, err := api.Create[model.Deposit](context.Background(), c, api.PaymentDeposits, model.TransferRequest{
		Type: model.TransferDeposit, VendorID: "VND-1", WalletID: "WLT-1", Amount: dec(50),
	})
	require.NoError(t, err)
	assert.Regexp(t, `^DEP-\d{6}$`, d.ID)

	deposits, err := api.List[model.Deposit](context.Background(), c, api.Deposits)
	require.NoError(t, err)
	require.Len(t, deposits, 1)
	assert.True(t, b.Snapshot().Wallets[0].Balance.Equal(dec(1050)))
}

func TestDependencyCheck(t *testing.T) {
	_, c := start(t, Options{CheckDependencies: true}, ledger())
	err := c.Delete(context.Background(), api.Vendors, "VND-1")
	assert.EqualError(t, err, "Cannot delete Vendor. Has link to Expense AEX-1")
}

func TestFailInjection(t *testing.T) {
	b, c := start(t, Options{}, ledger())
	b.Fail("POST /v1/sync/force", "sheet offline")

	_, err := c.ForceSync(context.Background())
	assert.EqualError(t, err, "sheet offline")

	b.Fail("POST /v1/sync/force", "")
	_, err = c.ForceSync(context.Background())
	assert.NoError(t, err)
}

func TestSyncLifecycle(t *testing.T) {
	b, c := start(t, Options{}, Data{})
	ctx := context.Background()

	_, err := api.Create[model.Vendor](ctx, c, api.Vendors, model.Vendor{Name: "Acme"})
	require.NoError(t, err)
	require.Len(t, b.Pending(), 1)

	st, err := c.SyncStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.PendingCount)
	assert.Equal(t, "Never", st.LastSync.Status)

	diff, err := c.SyncDiff(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, diff.Details["Vendors"].Push)

	_, err = c.SaveSyncSettings(ctx, 60)
	require.NoError(t, err)
	_, err = c.ForceSync(ctx)
	require.NoError(t, err)

	st, err = c.SyncStatus(ctx)
	require.NoError(t, err)
	assert.Zero(t, st.PendingCount)
	assert.Equal(t, 60, st.Settings.SyncFrequency)
	_, ok := st.LastSync.When()
	assert.True(t, ok)
}
