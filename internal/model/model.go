// Package model defines the records exchanged with the bookkeeping backend.
package model

import (
	"github.com/shopspring/decimal"
)

func init() {
	// The backend stores amounts as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// ID prefixes for client-generated record ids.
const (
	PrefixVendor  = "VND"
	PrefixWallet  = "WLT"
	PrefixExpense = "AEX"
)

// DefaultCurrency is the only currency wallets are created with.
const DefaultCurrency = "NGN"

// Fallback display names for references missing from the lookup cache.
const (
	UnknownVendor = "Unknown Vendor"
	UnknownWallet = "Unknown Wallet"
)

// Category classifies an expense.
type Category string

const (
	CategoryPoultry   Category = "Poultry"
	CategoryLogistics Category = "Logistics"
	CategoryFeed      Category = "Feed"
	CategoryUtilities Category = "Utilities"
	CategoryOther     Category = "Other"
)

// Categories lists every category in form order.
var Categories = []Category{CategoryPoultry, CategoryLogistics, CategoryFeed, CategoryUtilities, CategoryOther}

// Status is the payment state of an expense. Transitions are owned by the backend.
type Status string

const (
	StatusUnpaid  Status = "Unpaid"
	StatusPartial Status = "Partial"
	StatusPaid    Status = "Paid"
)

// Vendor is a supplier expenses are owed to.
type Vendor struct {
	ID      string `json:"id"`
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Wallet is a cash or bank account. Balance is maintained by the backend.
type Wallet struct {
	ID       string          `json:"id"`
	Name     string          `json:"name" validate:"required"`
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance" validate:"gte=0"`
}

// Expense is an invoice owed to a vendor. Balance is the unpaid remainder.
type Expense struct {
	ID          string          `json:"id"`
	VendorID    string          `json:"vendorId"`
	Date        string          `json:"date"`
	Category    Category        `json:"category" validate:"omitempty,oneof=Poultry Logistics Feed Utilities Other"`
	Description string          `json:"description"`
	Total       decimal.Decimal `json:"total" validate:"gt=0"`
	Balance     decimal.Decimal `json:"balance" validate:"gte=0"`
	Status      Status          `json:"status"`
}

// Outstanding reports whether the expense still carries debt.
func (e Expense) Outstanding() bool { return e.Status != StatusPaid }

// Allocation applies part of a payment to one expense.
type Allocation struct {
	ExpenseID string          `json:"id" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"gt=0"`
}

// Deposit is money moving into a wallet.
type Deposit struct {
	ID       string          `json:"id"`
	WalletID string          `json:"walletId"`
	VendorID string          `json:"vendorId,omitempty"`
	Source   string          `json:"source,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date"`
	Notes    string          `json:"notes,omitempty"`
}

// TransferType selects how the payments endpoint records a transfer.
type TransferType string

const (
	TransferPayment TransferType = "payment"
	TransferDeposit TransferType = "deposit"
)

// TransferRequest is the body posted to the payments collection.
type TransferRequest struct {
	Type        TransferType    `json:"type" validate:"oneof=payment deposit"`
	VendorID    string          `json:"vendorId" validate:"required"`
	WalletID    string          `json:"walletId" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	Allocations []Allocation    `json:"allocations,omitempty" validate:"required_if=Type payment,dive"`
}

// Debt sums the balances of a vendor's outstanding expenses.
func Debt(vendorID string, expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.VendorID == vendorID && e.Outstanding() {
			total = total.Add(e.Balance)
		}
	}
	return total
}

// Unpaid returns a vendor's outstanding expenses in their original order.
func Unpaid(vendorID string, expenses []Expense) []Expense {
	var out []Expense
	for _, e := range expenses {
		if e.VendorID == vendorID && e.Outstanding() {
			out = append(out, e)
		}
	}
	return out
}
