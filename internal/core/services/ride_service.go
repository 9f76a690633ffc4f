package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/car_expense_app/internal/apperrors"
	"github.com/SscSPs/car_expense_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_expense_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/car_expense_app/internal/core/ports/services"
	"github.com/SscSPs/car_expense_app/internal/dto"
	"github.com/SscSPs/car_expense_app/internal/utils/accounting"
	"github.com/SscSPs/car_expense_app/internal/utils/pagination"
)

var (
	ErrUnknownParticipant  = fmt.Errorf("%w: unknown participant", apperrors.ErrValidation)
	ErrNonPositiveDistance = fmt.Errorf("%w: ride distance must be positive", apperrors.ErrValidation)
	ErrInvalidDate         = fmt.Errorf("%w: invalid date", apperrors.ErrValidation)
	ErrInvalidPageToken    = fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
)

// rideService records rides and serves the ride views.
type rideService struct {
	BaseService
	rideRepo     portsrepo.RideRepositoryFacade
	exportRepo   portsrepo.ExportRepositoryFacade
	participants domain.ParticipantSet
}

// NewRideService creates a new ride service.
func NewRideService(rideRepo portsrepo.RideRepositoryFacade, exportRepo portsrepo.ExportRepositoryFacade, participants domain.ParticipantSet) portssvc.RideSvcFacade {
	return &rideService{
		rideRepo:     rideRepo,
		exportRepo:   exportRepo,
		participants: participants,
	}
}

var _ portssvc.RideSvcFacade = (*rideService)(nil)

func checkParticipant(set domain.ParticipantSet, role, name string) (domain.Participant, error) {
	p := domain.Participant(strings.TrimSpace(name))
	if !set.Contains(p) {
		return "", fmt.Errorf("%w: %s %q", ErrUnknownParticipant, role, name)
	}
	return p, nil
}

// CreateRide validates and records a ride.
func (s *rideService) CreateRide(ctx context.Context, req dto.CreateRideRequest) (*domain.Ride, error) {
	driver, err := checkParticipant(s.participants, "driver", req.Driver)
	if err != nil {
		return nil, err
	}
	if req.Distance == nil || !req.Distance.IsPositive() {
		return nil, ErrNonPositiveDistance
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	ride, err := s.rideRepo.SaveRide(ctx, domain.Ride{
		Driver:   driver,
		Distance: *req.Distance,
		Date:     date,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save ride", slog.String("driver", string(driver)))
		return nil, fmt.Errorf("failed to save ride: %w", err)
	}

	s.LogInfo(ctx, "Ride recorded", slog.Int64("ride_id", ride.RideID), slog.String("driver", string(driver)), slog.String("distance", ride.Distance.String()))
	return ride, nil
}

// ListRides returns rides newest first. With a limit it returns one page and the token for the next one.
func (s *rideService) ListRides(ctx context.Context, params dto.ListRidesParams) (*dto.ListRidesResult, error) {
	var cursor *portsrepo.RideCursor
	if params.NextToken != "" {
		date, createdAt, id, err := pagination.DecodeRideToken(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPageToken, err)
		}
		cursor = &portsrepo.RideCursor{Date: date, CreatedAt: createdAt, RideID: id}
	}

	fetch := 0
	if params.Limit > 0 {
		fetch = params.Limit + 1
	}
	rides, err := s.rideRepo.ListRides(ctx, fetch, cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to list rides: %w", err)
	}

	result := &dto.ListRidesResult{Rides: rides}
	if params.Limit > 0 && len(rides) > params.Limit {
		result.Rides = rides[:params.Limit]
		last := result.Rides[len(result.Rides)-1]
		token := pagination.EncodeRideToken(last.Date, last.CreatedAt, last.RideID)
		result.NextToken = &token
	}
	return result, nil
}

// ListLinkedRides returns rides already allocated to an expense.
func (s *rideService) ListLinkedRides(ctx context.Context) ([]domain.Ride, error) {
	rides, err := s.rideRepo.ListLinkedRides(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list linked rides: %w", err)
	}
	return rides, nil
}

// ListUnexportedRides returns rides without an export marker, annotated with their expense.
func (s *rideService) ListUnexportedRides(ctx context.Context) ([]domain.LinkedRide, error) {
	rides, err := s.rideRepo.ListRidesWithExpense(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rides: %w", err)
	}
	kind := domain.ItemRide
	exported, err := s.exportRepo.ListExported(ctx, &kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list exported rides: %w", err)
	}

	pending := accounting.Unexported(rides, domain.ItemRide, accounting.NewExportSet(exported), func(r domain.LinkedRide) int64 { return r.RideID })
	s.LogDebug(ctx, "Filtered exported rides", slog.Int("total", len(rides)), slog.Int("pending", len(pending)))
	return pending, nil
}

// isValidationErr reports whether err should be surfaced to the client as a 4xx.
func isValidationErr(err error) bool {
	return errors.Is(err, apperrors.ErrValidation)
}
