// Package transfer holds the payment allocation rules and the state of the
// record-payment form.
package transfer

import "github.com/shopspring/decimal"

// Allocate spreads amount over balances. With fullPay every row takes its full
// balance. Otherwise rows are filled greedily in order and anything beyond the
// sum of balances is dropped. Negative amounts allocate nothing.
func Allocate(balances []decimal.Decimal, amount decimal.Decimal, fullPay bool) []decimal.Decimal {
	out := make([]decimal.Decimal, len(balances))
	if fullPay {
		copy(out, balances)
		return out
	}
	remaining := decimal.Max(amount, decimal.Zero)
	for i, b := range balances {
		take := decimal.Min(remaining, decimal.Max(b, decimal.Zero))
		out[i] = take
		remaining = remaining.Sub(take)
	}
	return out
}
