package pgsql

import (
	"context"

	"github.com/SscSPs/car_expense_app/internal/apperrors"
	"github.com/SscSPs/car_expense_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_expense_app/internal/core/ports/repositories"
	"github.com/SscSPs/car_expense_app/internal/models"
	"github.com/SscSPs/car_expense_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBalanceRepository struct {
	BaseRepository
}

func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepositoryFacade {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceRepositoryFacade = (*PgxBalanceRepository)(nil)

// ListBalances retrieves all stored per-expense balances.
func (r *PgxBalanceRepository) ListBalances(ctx context.Context) ([]domain.Balance, error) {
	query := `
		SELECT id, expense_id, from_user, to_user, amount, created_at
		FROM expense_balances
		ORDER BY id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expense balances", err)
	}
	defer rows.Close()

	balances := []domain.Balance{}
	for rows.Next() {
		var m models.ExpenseBalance
		if err := rows.Scan(&m.ID, &m.ExpenseID, &m.FromUser, &m.ToUser, &m.Amount, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense balance row", err)
		}
		balances = append(balances, mapping.ToDomainBalance(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating expense balance rows", err)
	}
	return balances, nil
}

// ListBalanceDetails retrieves balances joined with their expense, newest expense first.
func (r *PgxBalanceRepository) ListBalanceDetails(ctx context.Context) ([]domain.ExpenseBalanceDetail, error) {
	query := `
		SELECT b.id, b.expense_id, b.from_user, b.to_user, b.amount, b.created_at,
		       e.description, e.date, e.amount, e.created_at
		FROM expense_balances b
		JOIN expenses e ON e.id = b.expense_id
		ORDER BY e.date DESC, e.created_at DESC, b.id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query balance details", err)
	}
	defer rows.Close()

	details := []domain.ExpenseBalanceDetail{}
	for rows.Next() {
		var m models.ExpenseBalance
		var e models.Expense
		if err := rows.Scan(
			&m.ID, &m.ExpenseID, &m.FromUser, &m.ToUser, &m.Amount, &m.CreatedAt,
			&e.Description, &e.Date, &e.Amount, &e.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan balance detail row", err)
		}
		details = append(details, mapping.ToDomainBalanceDetail(m, e))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating balance detail rows", err)
	}
	return details, nil
}
