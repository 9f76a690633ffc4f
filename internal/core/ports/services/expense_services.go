package services

import (
	"context"

	"github.com/SscSPs/car_expense_app/internal/core/domain"
	"github.com/SscSPs/car_expense_app/internal/dto"
)

// ExpenseSvcFacade defines expense operations
type ExpenseSvcFacade interface {
	// CreateExpense allocates the expense over its rides and persists it with its links and balances.
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest) (*domain.Expense, error)

	// ListExpenses returns expenses newest first.
	ListExpenses(ctx context.Context) ([]domain.Expense, error)
}
