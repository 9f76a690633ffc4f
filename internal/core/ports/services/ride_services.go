package services

import (
	"context"

	"github.com/SscSPs/car_expense_app/internal/core/domain"
	"github.com/SscSPs/car_expense_app/internal/dto"
)

// RideWriterSvc defines ride write operations
type RideWriterSvc interface {
	// CreateRide validates and records a ride.
	CreateRide(ctx context.Context, req dto.CreateRideRequest) (*domain.Ride, error)
}

// RideReaderSvc defines ride read operations
type RideReaderSvc interface {
	// ListRides returns rides newest first, paginated when params.Limit is set.
	ListRides(ctx context.Context, params dto.ListRidesParams) (*dto.ListRidesResult, error)

	// ListLinkedRides returns rides already allocated to an expense.
	ListLinkedRides(ctx context.Context) ([]domain.Ride, error)

	// ListUnexportedRides returns rides not yet exported, annotated with their expense.
	ListUnexportedRides(ctx context.Context) ([]domain.LinkedRide, error)
}

// RideSvcFacade combines all ride service interfaces
type RideSvcFacade interface {
	RideWriterSvc
	RideReaderSvc
}
