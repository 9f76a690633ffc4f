package repositories

import (
	"context"

	"github.com/SscSPs/car_expense_app/internal/core/domain"
)

// BalanceRepositoryFacade defines read operations over the derived expense balances.
type BalanceRepositoryFacade interface {
	// ListBalances returns every stored balance row.
	ListBalances(ctx context.Context) ([]domain.Balance, error)

	// ListBalanceDetails returns balances joined with their expense, newest expense first.
	ListBalanceDetails(ctx context.Context) ([]domain.ExpenseBalanceDetail, error)
}
