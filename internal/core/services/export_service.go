package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/car_expense_app/internal/apperrors"
	"github.com/SscSPs/car_expense_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_expense_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/car_expense_app/internal/core/ports/services"
	"github.com/SscSPs/car_expense_app/internal/dto"
)

var (
	ErrInvalidItemType = fmt.Errorf("%w: item type must be one of ride, expense, balance", apperrors.ErrValidation)
	ErrNoItems         = fmt.Errorf("%w: at least one item id is required", apperrors.ErrValidation)
	ErrInvalidItemID   = fmt.Errorf("%w: item ids must be positive", apperrors.ErrValidation)
)

// exportService records which ledger rows were synchronized to the external bookkeeping tool.
type exportService struct {
	BaseService
	exportRepo portsrepo.ExportRepositoryFacade
	cache      portsrepo.SettlementCache
	now        func() time.Time
}

// NewExportService creates a new export service.
func NewExportService(exportRepo portsrepo.ExportRepositoryFacade, cache portsrepo.SettlementCache) portssvc.ExportSvcFacade {
	return &exportService{
		exportRepo: exportRepo,
		cache:      cache,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.ExportSvcFacade = (*exportService)(nil)

// MarkExported flags the given items as exported and returns how many were newly marked.
func (s *exportService) MarkExported(ctx context.Context, req dto.MarkExportedRequest) (int, error) {
	kind := domain.ItemType(req.ItemType)
	if !kind.Valid() {
		return 0, ErrInvalidItemType
	}
	if len(req.ItemIDs) == 0 {
		return 0, ErrNoItems
	}

	now := s.now()
	items := make([]domain.ExportedItem, 0, len(req.ItemIDs))
	for _, id := range req.ItemIDs {
		if id <= 0 {
			return 0, fmt.Errorf("%w: %d", ErrInvalidItemID, id)
		}
		items = append(items, domain.ExportedItem{ItemType: kind, ItemID: id, ExportedAt: now})
	}

	marked, err := s.exportRepo.MarkExported(ctx, items)
	if err != nil {
		s.LogError(ctx, err, "Failed to mark items exported", slog.String("item_type", string(kind)))
		return 0, fmt.Errorf("failed to mark items exported: %w", err)
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.LogWarn(ctx, err, "Failed to invalidate settlement cache")
	}

	s.LogInfo(ctx, "Items marked exported", slog.String("item_type", string(kind)), slog.Int("requested", len(items)), slog.Int("marked", marked))
	return marked, nil
}

// ListExported returns exported items, all kinds when kind is empty.
func (s *exportService) ListExported(ctx context.Context, kind string) ([]domain.ExportedItem, error) {
	var filter *domain.ItemType
	if kind != "" {
		k := domain.ItemType(kind)
		if !k.Valid() {
			return nil, ErrInvalidItemType
		}
		filter = &k
	}
	items, err := s.exportRepo.ListExported(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list exported items: %w", err)
	}
	return items, nil
}
