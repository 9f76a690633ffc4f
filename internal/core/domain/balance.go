package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is a directed per-expense debt: From owes To Amount.
type Balance struct {
	BalanceID int64           `json:"id"`
	ExpenseID int64           `json:"expense_id"`
	From      Participant     `json:"from_user"`
	To        Participant     `json:"to_user"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// Settlement is an aggregated directed amount between two participants.
type Settlement struct {
	From   Participant     `json:"from_user"`
	To     Participant     `json:"to_user"`
	Amount decimal.Decimal `json:"amount"`
}

// ExpenseBalanceDetail is a balance joined with the metadata of its expense.
type ExpenseBalanceDetail struct {
	Balance
	Description      string
	ExpenseDate      time.Time
	ExpenseTotal     decimal.Decimal
	ExpenseCreatedAt time.Time
}
