package accounting

import "github.com/shopspring/decimal"

// StoragePlaces is the number of decimal places amounts and percentages are persisted with.
const StoragePlaces = 2

var hundred = decimal.NewFromInt(100)

// RoundForStorage rounds half-up (half away from zero) to StoragePlaces.
// Only the persistence and presentation boundaries call this; the engine never rounds.
func RoundForStorage(d decimal.Decimal) decimal.Decimal {
	return d.Round(StoragePlaces)
}

// FormatMoney renders an amount with exactly two decimals, e.g. "30.00".
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(StoragePlaces)
}
