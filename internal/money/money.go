// Package money parses and formats decimal amounts for display.
package money

import (
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// DefaultSymbol is the currency symbol used when none is configured.
const DefaultSymbol = "₦"

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// Parse reads the longest numeric prefix of a user-typed amount, so "1.2.3"
// is 1.2 and "40kg" is 40. Input with no leading number yields zero and
// false. Thousands separators and surrounding spaces are ignored.
func Parse(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	num := strings.TrimSuffix(numericPrefix.FindString(s), ".")
	if num == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// OrZero is Parse without the ok flag.
func OrZero(s string) decimal.Decimal {
	d, _ := Parse(s)
	return d
}

// Format renders d as "<symbol> 1,234.50".
func Format(d decimal.Decimal, symbol string) string {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	f, _ := d.Round(2).Float64()
	return symbol + " " + humanize.FormatFloat("#,###.##", f)
}

// Plain renders d exactly, without grouping or padding, the form used in
// inputs. Parse(Plain(d)) always equals d.
func Plain(d decimal.Decimal) string {
	return d.String()
}

// Sum adds up amounts.
func Sum(ds []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, d := range ds {
		total = total.Add(d)
	}
	return total
}
