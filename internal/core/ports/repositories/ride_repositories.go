package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/car_expense_app/internal/core/domain"
)

// RideCursor positions a ride listing after the last row of the previous page.
type RideCursor struct {
	Date      time.Time
	CreatedAt time.Time
	RideID    int64
}

// RideReader defines read operations for ride data
type RideReader interface {
	// ListRides returns rides newest date first. A limit <= 0 returns every ride after the cursor.
	ListRides(ctx context.Context, limit int, after *RideCursor) ([]domain.Ride, error)

	// FindRidesByIDs returns the rides that exist among ids, in no particular order.
	FindRidesByIDs(ctx context.Context, ids []int64) ([]domain.Ride, error)

	// ListLinkedRides returns rides that are linked to at least one expense.
	ListLinkedRides(ctx context.Context) ([]domain.Ride, error)

	// ListRidesWithExpense returns every ride, newest date first, annotated with its linked expense.
	ListRidesWithExpense(ctx context.Context) ([]domain.LinkedRide, error)

	// FindLinkedRideIDs returns the subset of ids already linked to an expense.
	FindLinkedRideIDs(ctx context.Context, ids []int64) ([]int64, error)
}

// RideWriter defines write operations for ride data
type RideWriter interface {
	// SaveRide inserts a ride and returns it with its generated ID and creation time.
	SaveRide(ctx context.Context, ride domain.Ride) (*domain.Ride, error)
}

// RideRepositoryFacade combines all ride-related repository interfaces
type RideRepositoryFacade interface {
	RideReader
	RideWriter
}
