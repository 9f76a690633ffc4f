package pgsql

import (
	portsrepo "github.com/SscSPs/car_expense_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres repositories. Cache is left for the caller to set.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RideRepo:    newPgxRideRepository(dbPool),
		ExpenseRepo: newPgxExpenseRepository(dbPool),
		BalanceRepo: newPgxBalanceRepository(dbPool),
		ExportRepo:  newPgxExportRepository(dbPool),
	}
}
