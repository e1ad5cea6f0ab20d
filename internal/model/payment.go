package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Payment is money moving out of a wallet toward a vendor.
//
// Refs is kept raw: the spreadsheet-backed store may return the applied
// allocations as a list or as a string holding a serialized list.
type Payment struct {
	ID          string          `json:"id"`
	VendorID    string          `json:"vendorId"`
	WalletID    string          `json:"walletId"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Allocations []Allocation    `json:"allocations,omitempty"`
	Refs        json.RawMessage `json:"refs,omitempty"`
}

// References returns the expenses this payment was applied to. Refs wins over
// Allocations when both are present.
func (p Payment) References() ([]Allocation, error) {
	refs, err := ParseRefs(p.Refs)
	if err != nil {
		return nil, err
	}
	if refs == nil && len(p.Allocations) > 0 {
		return append([]Allocation(nil), p.Allocations...), nil
	}
	return refs, nil
}

// ParseRefs decodes a refs value. Elements may be allocation objects or bare
// expense ids; the whole list may itself be wrapped in a JSON string.
func ParseRefs(raw json.RawMessage) ([]Allocation, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decode refs string: %w", err)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		raw = json.RawMessage(s)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode refs list: %w", err)
	}
	out := make([]Allocation, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) > 0 && item[0] == '"' {
			var id string
			if err := json.Unmarshal(item, &id); err != nil {
				return nil, fmt.Errorf("decode ref id: %w", err)
			}
			out = append(out, Allocation{ExpenseID: id})
			continue
		}
		var a Allocation
		if err := json.Unmarshal(item, &a); err != nil {
			return nil, fmt.Errorf("decode ref: %w", err)
		}
		out = append(out, a)
	}
	return out, nil
}
