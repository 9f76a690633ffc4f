package repositories

import (
	"context"

	"github.com/SscSPs/car_expense_app/internal/core/domain"
)

// SettlementCache caches reduced settlement views between writes.
//
// Views are stored per generation. Readers take the generation before reading the ledger and
// pass it to both GetSettlements and SetSettlements, so a view computed before an Invalidate
// is never served afterwards.
type SettlementCache interface {
	// Generation returns the current generation. Invalidate advances it.
	Generation(ctx context.Context) (int64, error)
	// GetSettlements returns the cached rows and whether the key was present.
	GetSettlements(ctx context.Context, generation int64, key string) ([]domain.Settlement, bool, error)
	SetSettlements(ctx context.Context, generation int64, key string, rows []domain.Settlement) error
	// Invalidate drops every cached settlement view.
	Invalidate(ctx context.Context) error
}
