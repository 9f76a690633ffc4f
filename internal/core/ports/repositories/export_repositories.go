package repositories

import (
	"context"

	"github.com/SscSPs/car_expense_app/internal/core/domain"
)

// ExportRepositoryFacade stores the exported-item markers.
type ExportRepositoryFacade interface {
	// MarkExported records the items as exported. Items already marked are left untouched.
	// It returns the number of newly marked items.
	MarkExported(ctx context.Context, items []domain.ExportedItem) (int, error)

	// ListExported returns the exported items, optionally restricted to one kind.
	ListExported(ctx context.Context, kind *domain.ItemType) ([]domain.ExportedItem, error)
}
