package pgsql

import (
	"context"
	"errors"
	"net/http"

	"github.com/SscSPs/car_expense_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
	pgFKViolation     = "23503"
)

// BaseRepository holds the pool shared by the ledger repositories and runs their transactions.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// InTx runs fn inside one transaction. The transaction is committed when fn returns nil
// and rolled back otherwise.
func (r *BaseRepository) InTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}
	defer func() {
		// ErrTxClosed after a successful commit
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			err = errors.Join(err, rbErr)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", err)
	}
	return nil
}

// persistenceError wraps a storage failure, naming the violated ledger constraint when there is one.
func persistenceError(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if pgErr.ConstraintName == "uq_ride_expense_link_ride" {
				msg = "ride already linked to another expense"
			} else {
				msg += ": duplicate row"
			}
		case pgCheckViolation:
			msg += ": check constraint " + pgErr.ConstraintName + " violated"
		case pgFKViolation:
			msg += ": referenced row does not exist"
		}
	}
	return apperrors.NewAppError(http.StatusInternalServerError, msg, err)
}
