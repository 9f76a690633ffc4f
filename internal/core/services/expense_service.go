package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/car_expense_app/internal/apperrors"
	"github.com/SscSPs/car_expense_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_expense_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/car_expense_app/internal/core/ports/services"
	"github.com/SscSPs/car_expense_app/internal/dto"
	"github.com/SscSPs/car_expense_app/internal/utils/accounting"
)

var (
	ErrDescriptionMissing = fmt.Errorf("%w: expense description is required", apperrors.ErrValidation)
	ErrAmountMissing      = fmt.Errorf("%w: expense amount is required", apperrors.ErrValidation)
	ErrRideAlreadyLinked  = fmt.Errorf("%w: ride is already linked to an expense", apperrors.ErrValidation)
)

// expenseService allocates expenses over rides and persists the result.
type expenseService struct {
	BaseService
	expenseRepo  portsrepo.ExpenseRepositoryFacade
	rideRepo     portsrepo.RideReader
	cache        portsrepo.SettlementCache
	participants domain.ParticipantSet
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, rideRepo portsrepo.RideReader, cache portsrepo.SettlementCache, participants domain.ParticipantSet) portssvc.ExpenseSvcFacade {
	return &expenseService{
		expenseRepo:  expenseRepo,
		rideRepo:     rideRepo,
		cache:        cache,
		participants: participants,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// CreateExpense validates the request, runs the allocation and persists the expense with its
// links and balances in one atomic write. Every validation happens before that write.
func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	payer, err := checkParticipant(s.participants, "payer", req.Payer)
	if err != nil {
		return nil, err
	}
	if req.Amount == nil {
		return nil, ErrAmountMissing
	}
	if err := accounting.ValidateAmount(*req.Amount); err != nil {
		return nil, err
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, ErrDescriptionMissing
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	expense := domain.Expense{
		Amount:      *req.Amount,
		Description: description,
		Date:        date,
		Payer:       payer,
	}

	var rides []domain.Ride
	if len(req.RideIDs) > 0 {
		rides, err = s.rideRepo.FindRidesByIDs(ctx, req.RideIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch rides: %w", err)
		}
	}

	alloc, err := accounting.Allocate(expense, req.RideIDs, rides)
	if err != nil {
		s.LogWarn(ctx, err, "Expense allocation rejected", slog.String("payer", string(payer)), slog.Any("ride_ids", req.RideIDs))
		return nil, err
	}

	linked, err := s.rideRepo.FindLinkedRideIDs(ctx, req.RideIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to check ride links: %w", err)
	}
	if len(linked) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrRideAlreadyLinked, linked)
	}

	saved, err := s.expenseRepo.SaveExpense(ctx, expense, alloc.Links, alloc.Balances)
	if err != nil {
		if isValidationErr(err) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to persist expense", slog.String("payer", string(payer)))
		return nil, fmt.Errorf("failed to persist expense: %w", err)
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		s.LogWarn(ctx, err, "Failed to invalidate settlement cache")
	}

	s.LogInfo(ctx, "Expense recorded",
		slog.Int64("expense_id", saved.ExpenseID),
		slog.String("amount", saved.Amount.String()),
		slog.Int("links", len(alloc.Links)),
		slog.Int("balances", len(alloc.Balances)),
	)
	return saved, nil
}

// ListExpenses returns expenses newest first.
func (s *expenseService) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	expenses, err := s.expenseRepo.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}
