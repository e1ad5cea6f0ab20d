package tui

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/bookkeep/internal/api"
	"github.com/jask/bookkeep/internal/controller"
	"github.com/jask/bookkeep/internal/fakeapi"
	"github.com/jask/bookkeep/internal/lookup"
	"github.com/jask/bookkeep/internal/model"
	"github.com/jask/bookkeep/internal/nav"
	"github.com/jask/bookkeep/internal/render"
	"github.com/jask/bookkeep/internal/transfer"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func seed() fakeapi.Data {
	return fakeapi.Data{
		Vendors: []model.Vendor{
			{ID: "VND-1", Name: "Acme Feeds"},
			{ID: "VND-2", Name: "Haulage Co"},
		},
		Wallets: []model.Wallet{
			{ID: "WLT-1", Name: "Cash", Currency: "NGN", Balance: dec(1000)},
			{ID: "WLT-2", Name: "Bank", Currency: "NGN", Balance: dec(100)},
		},
		Expenses: []model.Expense{
			{ID: "AEX-1", VendorID: "VND-1", Date: "2024-03-01", Category: model.CategoryFeed, Total: dec(500), Balance: dec(500), Status: model.StatusUnpaid},
			{ID: "AEX-2", VendorID: "VND-1", Date: "2024-03-02", Category: model.CategoryFeed, Total: dec(400), Balance: dec(300), Status: model.StatusPartial},
			{ID: "AEX-3", VendorID: "VND-2", Date: "2024-03-04", Category: model.CategoryLogistics, Total: dec(80), Balance: dec(80), Status: model.StatusUnpaid},
		},
	}
}

func setup(t *testing.T) (*fakeapi.Backend, *App) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	b := fakeapi.New(fakeapi.Options{})
	b.Seed(seed())
	srv := httptest.NewServer(b.Handler())
	t.Cleanup(srv.Close)

	client := api.New(srv.URL+"/v1", time.Second, zerolog.Nop())
	deps := controller.Deps{Client: client, Cache: lookup.New(client), Symbol: "₦", Log: zerolog.Nop()}
	a := New(context.Background(), deps, NewControllers(deps))
	a.pushReload = time.Millisecond
	a.deleteAlert = time.Millisecond
	run(a, a.Init())
	return b, a
}

// run executes cmd and feeds every resulting message back into the app until
// no commands remain.
func run(a *App, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := a.Update(msg)
			queue = append(queue, next)
		}
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(a *App, keys ...string) {
	for _, k := range keys {
		_, cmd := a.Update(keyMsg(k))
		run(a, cmd)
	}
}

func typeText(a *App, s string) {
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	run(a, cmd)
}

func rowIDs(tbl render.Table) []string {
	out := make([]string, len(tbl.Rows))
	for i, r := range tbl.Rows {
		out[i] = r.ID
	}
	return out
}

func TestInitLoadsExpensesWithVendorNames(t *testing.T) {
	_, a := setup(t)

	assert.Equal(t, nav.Expenses, a.state.View())
	assert.False(t, a.loading)
	require.Len(t, a.table.Rows, 3)
	assert.Equal(t, "Acme Feeds", a.table.Rows[0].Cells[1])
	assert.Contains(t, a.View(), "Manage Expenses")
	assert.Contains(t, a.View(), "[n] New Expense")
}

func TestStartOpensRequestedScreen(t *testing.T) {
	gin.SetMode(gin.TestMode)
	b := fakeapi.New(fakeapi.Options{})
	b.Seed(seed())
	srv := httptest.NewServer(b.Handler())
	t.Cleanup(srv.Close)

	client := api.New(srv.URL+"/v1", time.Second, zerolog.Nop())
	deps := controller.Deps{Client: client, Cache: lookup.New(client), Symbol: "₦", Log: zerolog.Nop()}
	a := New(context.Background(), deps, NewControllers(deps))
	a.Start(nav.Wallets)
	run(a, a.Init())

	assert.Equal(t, nav.Wallets, a.state.View())
	assert.Equal(t, []string{"WLT-1", "WLT-2"}, rowIDs(a.table))
}

func TestTabsSwitchScreens(t *testing.T) {
	_, a := setup(t)

	press(a, "3")
	assert.Equal(t, nav.Vendors, a.state.View())
	assert.ElementsMatch(t, []string{"VND-1", "VND-2"}, rowIDs(a.table))
	assert.Contains(t, a.View(), "Manage Vendors")

	press(a, "5")
	assert.Equal(t, nav.Settings, a.state.View())
	assert.NotContains(t, a.View(), "[n]")
}

func TestStaleListResultIsDropped(t *testing.T) {
	_, a := setup(t)

	_, toVendors := a.Update(keyMsg("3"))
	_, toWallets := a.Update(keyMsg("4"))

	// The vendors load finishes after the user already moved on.
	run(a, toVendors)
	assert.Empty(t, a.table.Rows)
	assert.True(t, a.loading)

	run(a, toWallets)
	assert.ElementsMatch(t, []string{"WLT-1", "WLT-2"}, rowIDs(a.table))
}

func TestCursorAndDetail(t *testing.T) {
	_, a := setup(t)

	press(a, "j", "j", "j")
	assert.Equal(t, 2, a.cursor)
	press(a, "k")
	assert.Equal(t, 1, a.cursor)

	press(a, "enter")
	require.NotNil(t, a.detail)
	assert.Equal(t, "AEX-2", a.detail.ID)
	assert.Equal(t, nav.PanelDetail, a.state.Panel())

	press(a, "esc")
	assert.Nil(t, a.detail)
	assert.Equal(t, nav.PanelNone, a.state.Panel())
}

func TestDeleteConfirmed(t *testing.T) {
	b, a := setup(t)

	press(a, "enter", "x")
	require.NotNil(t, a.modal)
	assert.Equal(t, render.ModalConfirm, a.modal.Kind)
	assert.Contains(t, a.View(), "Are you sure?")

	press(a, "y")
	assert.Nil(t, a.modal)
	assert.Len(t, b.Snapshot().Expenses, 2)
	assert.ElementsMatch(t, []string{"AEX-2", "AEX-3"}, rowIDs(a.table))
	assert.Equal(t, "Record deleted", a.status)
}

func TestDeleteCancelled(t *testing.T) {
	b, a := setup(t)

	press(a, "x", "n")
	assert.Nil(t, a.modal)
	assert.Len(t, b.Snapshot().Expenses, 3)
}

func TestDeleteFailureShowsAlert(t *testing.T) {
	b, a := setup(t)
	b.Fail("DELETE /v1/expenses/:id", "Expense is locked")

	press(a, "enter", "x", "y")
	require.NotNil(t, a.modal)
	assert.Equal(t, render.ModalAlert, a.modal.Kind)
	assert.Equal(t, "Delete Failed", a.modal.Title)
	assert.Equal(t, "Expense is locked", a.modal.Message)

	press(a, "enter")
	assert.Nil(t, a.modal)
	assert.Len(t, b.Snapshot().Expenses, 3)
}

func TestNewExpenseThroughForm(t *testing.T) {
	b, a := setup(t)

	press(a, "n")
	require.NotNil(t, a.form)
	assert.Equal(t, "New Expense", a.form.Title)

	typeText(a, "haul")
	press(a, "enter")
	assert.Equal(t, "VND-2", a.form.Value("vendorId"))
	assert.Equal(t, "date", a.form.Focused().Key)

	press(a, "tab")
	typeText(a, "12a50")
	assert.Equal(t, "1250", a.form.Value("total"))

	press(a, "ctrl+s")
	assert.Nil(t, a.form)
	assert.Equal(t, nav.PanelNone, a.state.Panel())
	require.Len(t, b.Snapshot().Expenses, 4)
	created := b.Snapshot().Expenses[3]
	assert.Equal(t, "VND-2", created.VendorID)
	assert.True(t, created.Total.Equal(dec(1250)))
	assert.True(t, created.Balance.Equal(dec(1250)))
	assert.Equal(t, model.CategoryPoultry, created.Category)
	assert.Len(t, a.table.Rows, 4)
}

func TestSaveFailureKeepsFormOpen(t *testing.T) {
	b, a := setup(t)

	press(a, "n", "ctrl+s")
	require.NotNil(t, a.modal)
	assert.Equal(t, controller.ErrInvalidAmount.Error(), a.modal.Message)
	require.NotNil(t, a.form)
	assert.False(t, a.saving)

	press(a, "enter")
	assert.Nil(t, a.modal)
	assert.NotNil(t, a.form)
	assert.Len(t, b.Snapshot().Expenses, 3)
}

func TestFormEscapeDiscards(t *testing.T) {
	b, a := setup(t)

	press(a, "3", "n")
	typeText(a, "Someone")
	press(a, "esc")
	assert.Nil(t, a.form)
	assert.Len(t, b.Snapshot().Vendors, 2)
}

func TestRecordPaymentWithFullPay(t *testing.T) {
	b, a := setup(t)

	press(a, "2", "n")
	require.NotNil(t, a.transfer)
	assert.Contains(t, a.View(), "Record Transfer")

	press(a, "tab")
	typeText(a, "acme")
	press(a, "enter")
	f := a.transfer.Form
	assert.Equal(t, "VND-1", f.VendorID)
	require.Len(t, f.Rows, 2)

	press(a, "tab")
	typeText(a, "cash")
	press(a, "enter")
	assert.Equal(t, "WLT-1", f.WalletID)

	press(a, "tab", "space")
	assert.True(t, f.FullPay)
	assert.True(t, f.Total().Equal(dec(800)))

	press(a, "ctrl+s")
	assert.Nil(t, a.transfer)
	assert.Equal(t, nav.Payments, a.state.View())
	assert.Equal(t, "Transfer recorded", a.status)

	snap := b.Snapshot()
	require.Len(t, snap.Payments, 1)
	assert.True(t, snap.Payments[0].Amount.Equal(dec(800)))
	assert.True(t, snap.Wallets[0].Balance.Equal(dec(200)))
	assert.Len(t, a.table.Rows, 1)
}

func TestAmountSpreadsAcrossRows(t *testing.T) {
	_, a := setup(t)

	press(a, "2", "n", "tab")
	typeText(a, "acme")
	press(a, "enter", "tab", "tab", "tab")
	assert.Equal(t, render.FocusAmount, a.transfer.Focus)

	typeText(a, "600")
	f := a.transfer.Form
	assert.Equal(t, "500", f.Rows[0].Text)
	assert.Equal(t, "100", f.Rows[1].Text)

	press(a, "tab", "tab")
	assert.Equal(t, render.FocusRows+1, a.transfer.Focus)
	typeText(a, "5")
	assert.Equal(t, "300", f.Rows[1].Text, "clamped to the balance")
}

func TestInsufficientFundsAlert(t *testing.T) {
	b, a := setup(t)

	press(a, "2", "n", "tab")
	typeText(a, "acme")
	press(a, "enter", "tab")
	typeText(a, "bank")
	press(a, "enter", "tab", "space", "ctrl+s")

	require.NotNil(t, a.modal)
	assert.Equal(t, "Check Input", a.modal.Title)
	assert.Equal(t, "Insufficient funds. Need ₦ 800.00.", a.modal.Message)
	assert.NotNil(t, a.transfer)
	assert.Empty(t, b.Snapshot().Payments)
}

func TestAddFundsFromWallet(t *testing.T) {
	b, a := setup(t)

	press(a, "4", "enter")
	require.NotNil(t, a.detail)
	press(a, "f")
	require.NotNil(t, a.transfer)
	f := a.transfer.Form
	assert.Equal(t, transfer.Deposit, f.Mode)
	assert.Equal(t, "WLT-1", f.WalletID)
	assert.Nil(t, a.detail)

	press(a, "right")
	assert.NotEmpty(t, f.VendorID)
	press(a, "tab", "tab")
	assert.Equal(t, render.FocusAmount, a.transfer.Focus)
	typeText(a, "75")

	press(a, "ctrl+s")
	assert.Equal(t, nav.Payments, a.state.View())
	snap := b.Snapshot()
	assert.True(t, snap.Wallets[0].Balance.Equal(dec(1075)))
	require.Len(t, snap.Deposits, 1)
	assert.True(t, snap.Deposits[0].Amount.Equal(dec(75)))
}

func TestAmountTypedBeforeBillsArriveIsKept(t *testing.T) {
	_, a := setup(t)

	press(a, "2", "n", "tab")
	typeText(a, "acme")
	_, bills := a.Update(keyMsg("enter"))
	require.NotNil(t, bills)
	f := a.transfer.Form
	assert.Equal(t, "VND-1", f.VendorID)
	assert.Empty(t, f.Rows)

	press(a, "tab", "tab", "tab")
	require.Equal(t, render.FocusAmount, a.transfer.Focus)
	typeText(a, "600")
	assert.Equal(t, "600", f.AmountText)

	run(a, bills)
	assert.Equal(t, "600", f.AmountText)
	require.Len(t, f.Rows, 2)
	assert.Equal(t, "500", f.Rows[0].Text)
	assert.Equal(t, "100", f.Rows[1].Text)
	assert.True(t, f.Total().Equal(dec(600)))
}

func TestDepositVendorPickLoadsNoBills(t *testing.T) {
	_, a := setup(t)

	press(a, "4", "enter", "f")
	f := a.transfer.Form
	require.Equal(t, transfer.Deposit, f.Mode)

	_, cmd := a.Update(keyMsg("right"))
	assert.Nil(t, cmd)
	assert.NotEmpty(t, f.VendorID)

	press(a, "tab", "tab")
	typeText(a, "75")
	assert.Equal(t, "75", f.AmountText)
	assert.Empty(t, f.Rows)
}

func TestModeToggleClearsAmount(t *testing.T) {
	_, a := setup(t)

	press(a, "2", "n", "tab")
	typeText(a, "acme")
	press(a, "enter", "shift+tab", "space")
	f := a.transfer.Form
	assert.Equal(t, transfer.Deposit, f.Mode)
	assert.Empty(t, f.Rows)

	press(a, "space")
	assert.Equal(t, transfer.Payment, f.Mode)
	require.Len(t, f.Rows, 2)
	assert.Empty(t, f.Rows[0].Text)
}

func TestSettingsPush(t *testing.T) {
	_, a := setup(t)

	press(a, "5")
	assert.False(t, a.sync.Loading)
	assert.Empty(t, a.sync.Failed)
	assert.Len(t, a.sync.Resources, 5)

	press(a, "p")
	assert.False(t, a.sync.Pushing)
	assert.Equal(t, "Push Started", a.status)
	assert.Equal(t, "Success", a.sync.LastStatus)
}

func TestPushStaysLockedUntilReload(t *testing.T) {
	_, a := setup(t)
	press(a, "5")

	_, cmd := a.Update(keyMsg("p"))
	require.NotNil(t, cmd)
	assert.True(t, a.sync.Pushing)
	_, tick := a.Update(cmd())
	require.NotNil(t, tick)
	assert.Equal(t, "Push Started", a.status)
	assert.True(t, a.sync.Pushing)

	_, again := a.Update(keyMsg("p"))
	assert.Nil(t, again, "second push ignored before the reload")

	run(a, tick)
	assert.False(t, a.sync.Pushing)
	assert.Equal(t, "Success", a.sync.LastStatus)
}

func TestSettingsPushFailure(t *testing.T) {
	b, a := setup(t)
	b.Fail("POST /v1/sync/force", "Sheets unreachable")

	press(a, "5", "p")
	assert.Equal(t, "Failed to start sync: Sheets unreachable", a.status)
	assert.True(t, a.statusErr)
	assert.False(t, a.sync.Pushing)
}

func TestSettingsFrequency(t *testing.T) {
	_, a := setup(t)

	press(a, "5", "f")
	assert.True(t, a.sync.EditingFreq)
	for range a.freqInput {
		press(a, "backspace")
	}
	typeText(a, "9x0")
	assert.Equal(t, "90", a.freqInput)
	press(a, "enter")

	assert.Equal(t, "Settings updated!", a.status)
	assert.False(t, a.sync.EditingFreq)
	assert.Equal(t, "90", a.sync.Frequency)
}

func TestSettingsFailureThenRetry(t *testing.T) {
	b, a := setup(t)
	b.Fail("GET /v1/sync/status", "Sheets offline")

	press(a, "5")
	assert.Equal(t, "Sheets offline", a.sync.Failed)
	assert.Contains(t, a.View(), "Connection Failed")

	b.Fail("GET /v1/sync/status", "")
	press(a, "r")
	assert.Empty(t, a.sync.Failed)
}

func TestHardResetNavigatesToExpenses(t *testing.T) {
	_, a := setup(t)

	press(a, "5", "P")
	require.NotNil(t, a.modal)
	press(a, "y")
	assert.Equal(t, nav.Expenses, a.state.View())
	assert.Len(t, a.table.Rows, 3)
}

func TestListLoadFailure(t *testing.T) {
	b, a := setup(t)
	b.Fail("GET /v1/vendors", "Backend down")

	press(a, "3")
	assert.Equal(t, "Backend down", a.loadErr)
	assert.Contains(t, a.View(), "Backend down")

	b.Fail("GET /v1/vendors", "")
	press(a, "r")
	assert.Empty(t, a.loadErr)
	assert.Len(t, a.table.Rows, 2)
}
