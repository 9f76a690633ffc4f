package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a row of the expenses table.
type Expense struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"` // NUMERIC(12,2)
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Payer       string          `json:"payer"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RideExpenseLink is a row of the ride_expense_link table.
type RideExpenseLink struct {
	RideID     int64           `json:"ride_id"`
	ExpenseID  int64           `json:"expense_id"`
	Percentage decimal.Decimal `json:"percentage"` // NUMERIC(5,2)
}

// ExpenseBalance is a row of the expense_balances table.
type ExpenseBalance struct {
	ID        int64           `json:"id"`
	ExpenseID int64           `json:"expense_id"`
	FromUser  string          `json:"from_user"`
	ToUser    string          `json:"to_user"`
	Amount    decimal.Decimal `json:"amount"` // NUMERIC(12,2)
	CreatedAt time.Time       `json:"created_at"`
}

// ExportedItem is a row of the exported_items table.
type ExportedItem struct {
	ItemType   string    `json:"item_type"`
	ItemID     int64     `json:"item_id"`
	ExportedAt time.Time `json:"exported_at"`
}
