package services_test

import (
	"context"

	"github.com/SscSPs/car_expense_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_expense_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock RideRepository ---
type MockRideRepository struct {
	mock.Mock
}

func (m *MockRideRepository) SaveRide(ctx context.Context, ride domain.Ride) (*domain.Ride, error) {
	args := m.Called(ctx, ride)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ride), args.Error(1)
}

func (m *MockRideRepository) ListRides(ctx context.Context, limit int, after *portsrepo.RideCursor) ([]domain.Ride, error) {
	args := m.Called(ctx, limit, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ride), args.Error(1)
}

func (m *MockRideRepository) FindRidesByIDs(ctx context.Context, ids []int64) ([]domain.Ride, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ride), args.Error(1)
}

func (m *MockRideRepository) ListLinkedRides(ctx context.Context) ([]domain.Ride, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ride), args.Error(1)
}

func (m *MockRideRepository) ListRidesWithExpense(ctx context.Context) ([]domain.LinkedRide, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LinkedRide), args.Error(1)
}

func (m *MockRideRepository) FindLinkedRideIDs(ctx context.Context, ids []int64) ([]int64, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense, links []domain.RideExpenseLink, balances []domain.Balance) (*domain.Expense, error) {
	args := m.Called(ctx, expense, links, balances)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

// --- Mock BalanceRepository ---
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) ListBalances(ctx context.Context) ([]domain.Balance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) ListBalanceDetails(ctx context.Context) ([]domain.ExpenseBalanceDetail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseBalanceDetail), args.Error(1)
}

// --- Mock ExportRepository ---
type MockExportRepository struct {
	mock.Mock
}

func (m *MockExportRepository) MarkExported(ctx context.Context, items []domain.ExportedItem) (int, error) {
	args := m.Called(ctx, items)
	return args.Int(0), args.Error(1)
}

func (m *MockExportRepository) ListExported(ctx context.Context, kind *domain.ItemType) ([]domain.ExportedItem, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExportedItem), args.Error(1)
}

// --- Mock SettlementCache ---
type MockSettlementCache struct {
	mock.Mock
}

func (m *MockSettlementCache) Generation(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSettlementCache) GetSettlements(ctx context.Context, generation int64, key string) ([]domain.Settlement, bool, error) {
	args := m.Called(ctx, generation, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.Settlement), args.Bool(1), args.Error(2)
}

func (m *MockSettlementCache) SetSettlements(ctx context.Context, generation int64, key string, rows []domain.Settlement) error {
	args := m.Called(ctx, generation, key, rows)
	return args.Error(0)
}

func (m *MockSettlementCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
