package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SscSPs/car_expense_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_expense_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/car_expense_app/internal/core/ports/services"
	"github.com/SscSPs/car_expense_app/internal/dto"
	"github.com/SscSPs/car_expense_app/internal/utils/accounting"
)

const (
	cacheKeyTotalBalances = "settlements:totals"
	cacheKeyPendingNet    = "settlements:pending-net"
)

// balanceService derives the balance views from stored per-expense balances.
type balanceService struct {
	BaseService
	balanceRepo portsrepo.BalanceRepositoryFacade
	exportRepo  portsrepo.ExportRepositoryFacade
	cache       portsrepo.SettlementCache
}

// NewBalanceService creates a new balance service.
func NewBalanceService(balanceRepo portsrepo.BalanceRepositoryFacade, exportRepo portsrepo.ExportRepositoryFacade, cache portsrepo.SettlementCache) portssvc.BalanceSvcFacade {
	return &balanceService{
		balanceRepo: balanceRepo,
		exportRepo:  exportRepo,
		cache:       cache,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// Summary returns every balance joined with its expense, most recently recorded expense first.
func (s *balanceService) Summary(ctx context.Context) ([]domain.ExpenseBalanceDetail, error) {
	details, err := s.balanceRepo.ListBalanceDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	sort.SliceStable(details, func(i, j int) bool {
		a, b := details[i], details[j]
		if !a.ExpenseCreatedAt.Equal(b.ExpenseCreatedAt) {
			return a.ExpenseCreatedAt.After(b.ExpenseCreatedAt)
		}
		if a.ExpenseID != b.ExpenseID {
			return a.ExpenseID > b.ExpenseID
		}
		return a.BalanceID < b.BalanceID
	})
	return details, nil
}

// TotalBalances sums raw directed debts per pair.
func (s *balanceService) TotalBalances(ctx context.Context) ([]domain.Settlement, error) {
	return s.cached(ctx, s.snapshot(ctx), cacheKeyTotalBalances, func() ([]domain.Settlement, error) {
		balances, err := s.balanceRepo.ListBalances(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list balances: %w", err)
		}
		return accounting.GroupTotals(balances)
	})
}

// ExpenseBalances returns the balances of unexported expenses and their netted settlement.
func (s *balanceService) ExpenseBalances(ctx context.Context) (*dto.ExpenseBalances, error) {
	snap := s.snapshot(ctx)
	details, err := s.balanceRepo.ListBalanceDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	exported, err := s.exportRepo.ListExported(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list exported items: %w", err)
	}

	set := accounting.NewExportSet(exported)
	pending := accounting.Unexported(details, domain.ItemExpense, set, func(d domain.ExpenseBalanceDetail) int64 { return d.ExpenseID })
	pending = accounting.Unexported(pending, domain.ItemBalance, set, func(d domain.ExpenseBalanceDetail) int64 { return d.BalanceID })

	settlements, err := s.cached(ctx, snap, cacheKeyPendingNet, func() ([]domain.Settlement, error) {
		balances := make([]domain.Balance, len(pending))
		for i, d := range pending {
			balances[i] = d.Balance
		}
		return accounting.NetSettlements(balances)
	})
	if err != nil {
		return nil, err
	}

	return &dto.ExpenseBalances{Details: pending, Settlements: settlements}, nil
}

// cacheSnapshot is the cache generation observed before the ledger is read.
type cacheSnapshot struct {
	generation int64
	usable     bool
}

func (s *balanceService) snapshot(ctx context.Context) cacheSnapshot {
	gen, err := s.cache.Generation(ctx)
	if err != nil {
		s.LogWarn(ctx, err, "Settlement cache generation read failed")
		return cacheSnapshot{}
	}
	return cacheSnapshot{generation: gen, usable: true}
}

// cached serves key from the settlement cache, computing and storing it on a miss.
// Rows are stored under the generation taken before the ledger read, so a concurrent
// invalidation makes them unreachable. Cache failures are logged and never fail the read.
func (s *balanceService) cached(ctx context.Context, snap cacheSnapshot, key string, compute func() ([]domain.Settlement, error)) ([]domain.Settlement, error) {
	if snap.usable {
		rows, hit, err := s.cache.GetSettlements(ctx, snap.generation, key)
		if err != nil {
			s.LogWarn(ctx, err, "Settlement cache read failed", slog.String("key", key))
		} else if hit {
			s.LogDebug(ctx, "Settlement cache hit", slog.String("key", key), slog.Int64("generation", snap.generation))
			return rows, nil
		}
	}

	rows, err := compute()
	if err != nil {
		return nil, err
	}
	if !snap.usable {
		return rows, nil
	}
	if err := s.cache.SetSettlements(ctx, snap.generation, key, rows); err != nil {
		s.LogWarn(ctx, err, "Settlement cache write failed", slog.String("key", key))
	}
	return rows, nil
}
