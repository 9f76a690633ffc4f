package services

import (
	"context"

	"github.com/SscSPs/car_expense_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_expense_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/car_expense_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// A nil repos.Cache disables settlement caching.
func NewServiceContainer(participants domain.ParticipantSet, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	cache := repos.Cache
	if cache == nil {
		cache = nopSettlementCache{}
	}

	return &portssvc.ServiceContainer{
		Ride:         NewRideService(repos.RideRepo, repos.ExportRepo, participants),
		Expense:      NewExpenseService(repos.ExpenseRepo, repos.RideRepo, cache, participants),
		Balance:      NewBalanceService(repos.BalanceRepo, repos.ExportRepo, cache),
		Export:       NewExportService(repos.ExportRepo, cache),
		Participants: participants,
	}
}

// nopSettlementCache always misses.
type nopSettlementCache struct{}

func (nopSettlementCache) Generation(context.Context) (int64, error) { return 0, nil }

func (nopSettlementCache) GetSettlements(context.Context, int64, string) ([]domain.Settlement, bool, error) {
	return nil, false, nil
}

func (nopSettlementCache) SetSettlements(context.Context, int64, string, []domain.Settlement) error {
	return nil
}

func (nopSettlementCache) Invalidate(context.Context) error { return nil }
