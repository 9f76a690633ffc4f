package services

import (
	"context"

	"github.com/SscSPs/car_expense_app/internal/core/domain"
	"github.com/SscSPs/car_expense_app/internal/dto"
)

// ExportSvcFacade records and lists exported items.
type ExportSvcFacade interface {
	MarkExported(ctx context.Context, req dto.MarkExportedRequest) (int, error)
	ListExported(ctx context.Context, kind string) ([]domain.ExportedItem, error)
}
