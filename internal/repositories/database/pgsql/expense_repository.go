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

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

// SaveExpense inserts the expense, its ride links and its balances within one DB transaction.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense, links []domain.RideExpenseLink, balances []domain.Balance) (*domain.Expense, error) {
	m := mapping.ToModelExpense(expense)

	err := r.InTx(ctx, func(tx pgx.Tx) error {
		// 1. Insert the expense to obtain its id
		expenseQuery := `
			INSERT INTO expenses (amount, description, date, payer)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at;
		`
		if err := tx.QueryRow(ctx, expenseQuery, m.Amount, m.Description, m.Date, m.Payer).Scan(&m.ID, &m.CreatedAt); err != nil {
			return persistenceError("failed to insert expense", err)
		}

		// 2. Queue links and balances bound to the new expense
		batch := &pgx.Batch{}
		linkQuery := `INSERT INTO ride_expense_link (ride_id, expense_id, percentage) VALUES ($1, $2, $3);`
		for _, link := range links {
			ml := mapping.ToModelLink(link)
			batch.Queue(linkQuery, ml.RideID, m.ID, ml.Percentage)
		}
		balanceQuery := `INSERT INTO expense_balances (expense_id, from_user, to_user, amount) VALUES ($1, $2, $3, $4);`
		for _, bal := range balances {
			mb := mapping.ToModelBalance(bal)
			batch.Queue(balanceQuery, m.ID, mb.FromUser, mb.ToUser, mb.Amount)
		}

		// 3. Send the batch
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return persistenceError("failed to insert allocation rows for expense "+strconv.FormatInt(m.ID, 10), err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	saved := mapping.ToDomainExpense(m)
	return &saved, nil
}

// ListExpenses retrieves every expense newest first.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	query := `
		SELECT id, amount, description, date, payer, created_at
		FROM expenses
		ORDER BY date DESC, created_at DESC, id DESC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expenses", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var m models.Expense
		if err := rows.Scan(&m.ID, &m.Amount, &m.Description, &m.Date, &m.Payer, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense row", err)
		}
		expenses = append(expenses, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating expense rows", err)
	}
	return mapping.ToDomainExpenseSlice(expenses), nil
}
