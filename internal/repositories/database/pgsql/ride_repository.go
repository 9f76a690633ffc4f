package pgsql

import (
	"context"
	"strconv"

	"github.com/SscSPs/car_expense_app/internal/apperrors"
	"github.com/SscSPs/car_expense_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_expense_app/internal/core/ports/repositories"
	"github.com/SscSPs/car_expense_app/internal/models"
	"github.com/SscSPs/car_expense_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const rideColumns = `r.id, r.driver, r.distance, r.date, r.created_at`

// Stable newest-first ordering shared by every ride listing and the page cursor.
const rideOrderBy = `ORDER BY r.date DESC, r.created_at DESC, r.id DESC`

type PgxRideRepository struct {
	BaseRepository
}

func newPgxRideRepository(pool *pgxpool.Pool) portsrepo.RideRepositoryFacade {
	return &PgxRideRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RideRepositoryFacade = (*PgxRideRepository)(nil)

// SaveRide inserts a ride and returns it with the generated id and created_at.
func (r *PgxRideRepository) SaveRide(ctx context.Context, ride domain.Ride) (*domain.Ride, error) {
	m := mapping.ToModelRide(ride)
	query := `
		INSERT INTO rides (driver, distance, date)
		VALUES ($1, $2, $3)
		RETURNING id, created_at;
	`
	if err := r.Pool.QueryRow(ctx, query, m.Driver, m.Distance, m.Date).Scan(&m.ID, &m.CreatedAt); err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert ride", err)
	}
	saved := mapping.ToDomainRide(m)
	return &saved, nil
}

// ListRides retrieves rides newest first, optionally after a cursor and capped at limit.
func (r *PgxRideRepository) ListRides(ctx context.Context, limit int, after *portsrepo.RideCursor) ([]domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides r`
	var args []interface{}
	if after != nil {
		// Tuple comparison keeps the cursor consistent with rideOrderBy.
		query += ` WHERE (r.date, r.created_at, r.id) < ($1, $2, $3)`
		args = append(args, after.Date, after.CreatedAt, after.RideID)
	}
	query += " " + rideOrderBy
	if limit > 0 {
		query += " LIMIT $" + strconv.Itoa(len(args)+1)
		args = append(args, limit)
	}

	rows, err := r.Pool.Query(ctx, query+";", args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query rides", err)
	}
	return scanRides(rows)
}

// FindRidesByIDs retrieves the rides whose id is in ids.
func (r *PgxRideRepository) FindRidesByIDs(ctx context.Context, ids []int64) ([]domain.Ride, error) {
	if len(ids) == 0 {
		return []domain.Ride{}, nil
	}
	query := `SELECT ` + rideColumns + ` FROM rides r WHERE r.id = ANY($1) ` + rideOrderBy + `;`
	rows, err := r.Pool.Query(ctx, query, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query rides by id", err)
	}
	return scanRides(rows)
}

// ListLinkedRides retrieves rides that have been allocated to an expense.
func (r *PgxRideRepository) ListLinkedRides(ctx context.Context) ([]domain.Ride, error) {
	query := `
		SELECT ` + rideColumns + `
		FROM rides r
		WHERE EXISTS (SELECT 1 FROM ride_expense_link l WHERE l.ride_id = r.id)
		` + rideOrderBy + `;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query linked rides", err)
	}
	return scanRides(rows)
}

// ListRidesWithExpense retrieves every ride with the id and description of its expense, if any.
func (r *PgxRideRepository) ListRidesWithExpense(ctx context.Context) ([]domain.LinkedRide, error) {
	query := `
		SELECT ` + rideColumns + `, e.id, e.description
		FROM rides r
		LEFT JOIN ride_expense_link l ON l.ride_id = r.id
		LEFT JOIN expenses e ON e.id = l.expense_id
		` + rideOrderBy + `;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query rides with expenses", err)
	}
	defer rows.Close()

	result := []domain.LinkedRide{}
	for rows.Next() {
		var m models.Ride
		var expenseID *int64
		var description *string
		if err := rows.Scan(&m.ID, &m.Driver, &m.Distance, &m.Date, &m.CreatedAt, &expenseID, &description); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ride row", err)
		}
		result = append(result, domain.LinkedRide{
			Ride:               mapping.ToDomainRide(m),
			ExpenseID:          expenseID,
			ExpenseDescription: description,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ride rows", err)
	}
	return result, nil
}

// FindLinkedRideIDs returns which of ids already have a ride_expense_link row.
func (r *PgxRideRepository) FindLinkedRideIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}
	rows, err := r.Pool.Query(ctx, `SELECT ride_id FROM ride_expense_link WHERE ride_id = ANY($1) ORDER BY ride_id;`, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ride links", err)
	}
	linked, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan ride links", err)
	}
	return linked, nil
}

func scanRides(rows pgx.Rows) ([]domain.Ride, error) {
	defer rows.Close()

	rides := []models.Ride{}
	for rows.Next() {
		var m models.Ride
		if err := rows.Scan(&m.ID, &m.Driver, &m.Distance, &m.Date, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ride row", err)
		}
		rides = append(rides, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ride rows", err)
	}
	return mapping.ToDomainRideSlice(rides), nil
}
