package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a shared cost paid by one participant and tied to a set of rides.
type Expense struct {
	ExpenseID   int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Payer       Participant     `json:"payer"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RideExpenseLink records the share of an expense's total distance contributed by one ride.
type RideExpenseLink struct {
	RideID     int64           `json:"ride_id"`
	ExpenseID  int64           `json:"expense_id"`
	Percentage decimal.Decimal `json:"percentage"` // 0..100
}
