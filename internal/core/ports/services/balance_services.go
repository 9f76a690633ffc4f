package services

import (
	"context"

	"github.com/SscSPs/car_expense_app/internal/core/domain"
	"github.com/SscSPs/car_expense_app/internal/dto"
)

// BalanceSvcFacade exposes the read views derived from stored balances.
type BalanceSvcFacade interface {
	// Summary returns every balance joined with its expense, most recently recorded expense first.
	Summary(ctx context.Context) ([]domain.ExpenseBalanceDetail, error)

	// TotalBalances sums directed debts per (from, to) pair without netting.
	TotalBalances(ctx context.Context) ([]domain.Settlement, error)

	// ExpenseBalances returns the pending (unexported) balances and their netted settlement.
	ExpenseBalances(ctx context.Context) (*dto.ExpenseBalances, error)
}
