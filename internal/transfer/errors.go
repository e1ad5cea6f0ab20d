package transfer

import (
	"github.com/shopspring/decimal"

	"github.com/jask/bookkeep/internal/money"
)

// ValidationError is a form problem found before anything is sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrNoVendor      = &ValidationError{Message: "Please select a vendor."}
	ErrNoWallet      = &ValidationError{Message: "Please select a wallet."}
	ErrNoAllocation  = &ValidationError{Message: "Please allocate an amount."}
	ErrInvalidAmount = &ValidationError{Message: "Please enter a valid amount."}
)

func insufficientFunds(need decimal.Decimal, symbol string) *ValidationError {
	return &ValidationError{Message: "Insufficient funds. Need " + money.Format(need, symbol) + "."}
}
