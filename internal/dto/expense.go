package dto

import (
	"time"

	"github.com/SscSPs/car_expense_app/internal/core/domain"
	"github.com/SscSPs/car_expense_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data needed to record a shared expense.
type CreateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Description string           `json:"description" binding:"required"`
	Date        string           `json:"date" binding:"required"`
	Payer       string           `json:"payer" binding:"required,participant"`
	RideIDs     []int64          `json:"rideIds" binding:"required"`
}

// CreateExpenseResponse is returned after an expense was recorded.
type CreateExpenseResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ID          int64     `json:"id"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Payer       string    `json:"payer"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToExpenseResponses converts a slice of domain.Expense to []ExpenseResponse.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		responses[i] = ExpenseResponse{
			ID:          e.ExpenseID,
			Amount:      accounting.FormatMoney(e.Amount),
			Description: e.Description,
			Date:        e.Date,
			Payer:       string(e.Payer),
			CreatedAt:   e.CreatedAt,
		}
	}
	return responses
}
