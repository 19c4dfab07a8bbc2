// Package model defines the core domain models used throughout the application.
package model

import (
	"github.com/shopspring/decimal"
)

// UnknownVendor is the sentinel displayed when a ledger has no vendor,
// description, or memo column.
const UnknownVendor = "Unknown"

// Transaction represents a single ledger row. Index is the row's ordinal
// position within the ledger and is stable for the life of a session.
type Transaction struct {
	Vendor string
	Date   string
	Amount decimal.Decimal
	Index  int
}

// AmountKey returns the two-decimal-rounded string form of the amount,
// used as the equality key for ledger lookups.
func (t Transaction) AmountKey() string {
	return t.Amount.Round(2).StringFixed(2)
}

// DisplayVendor returns the vendor string or the unknown sentinel.
func (t Transaction) DisplayVendor() string {
	if t.Vendor == "" {
		return UnknownVendor
	}
	return t.Vendor
}

// DisplayDate returns the date string or "N/A" when the ledger carried none.
func (t Transaction) DisplayDate() string {
	if t.Date == "" {
		return "N/A"
	}
	return t.Date
}
