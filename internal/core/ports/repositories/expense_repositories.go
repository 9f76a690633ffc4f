package repositories

import (
	"context"

	"github.com/SscSPs/car_expense_app/internal/core/domain"
)

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// ListExpenses returns expenses newest date first.
	ListExpenses(ctx context.Context) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense atomically persists the expense, its ride links and its balances.
	// Link and balance ExpenseIDs are ignored and replaced with the generated expense ID.
	// Percentages and amounts are rounded to storage precision here. Either every row is written or none is.
	SaveExpense(ctx context.Context, expense domain.Expense, links []domain.RideExpenseLink, balances []domain.Balance) (*domain.Expense, error)
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
