package pgsql

import (
	"context"

	"github.com/SscSPs/car_expense_app/internal/apperrors"
	"github.com/SscSPs/car_expense_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_expense_app/internal/core/ports/repositories"
	"github.com/SscSPs/car_expense_app/internal/models"
	"github.com/SscSPs/car_expense_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExportRepository struct {
	BaseRepository
}

func newPgxExportRepository(pool *pgxpool.Pool) portsrepo.ExportRepositoryFacade {
	return &PgxExportRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExportRepositoryFacade = (*PgxExportRepository)(nil)

// MarkExported inserts export markers in one transaction, skipping items already marked.
func (r *PgxExportRepository) MarkExported(ctx context.Context, items []domain.ExportedItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO exported_items (item_type, item_id, exported_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (item_type, item_id) DO NOTHING;
	`
	batch := &pgx.Batch{}
	for _, item := range items {
		m := mapping.ToModelExportedItem(item)
		batch.Queue(query, m.ItemType, m.ItemID, m.ExportedAt)
	}

	marked := 0
	err := r.InTx(ctx, func(tx pgx.Tx) error {
		br := tx.SendBatch(ctx, batch)
		defer br.Close()
		for range items {
			tag, err := br.Exec()
			if err != nil {
				return persistenceError("failed to insert export marker", err)
			}
			marked += int(tag.RowsAffected())
		}
		return br.Close()
	})
	if err != nil {
		return 0, err
	}
	return marked, nil
}

// ListExported retrieves export markers, all kinds when kind is nil.
func (r *PgxExportRepository) ListExported(ctx context.Context, kind *domain.ItemType) ([]domain.ExportedItem, error) {
	query := `SELECT item_type, item_id, exported_at FROM exported_items`
	var args []interface{}
	if kind != nil {
		query += ` WHERE item_type = $1`
		args = append(args, string(*kind))
	}
	query += ` ORDER BY exported_at DESC, item_type, item_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query exported items", err)
	}
	defer rows.Close()

	items := []domain.ExportedItem{}
	for rows.Next() {
		var m models.ExportedItem
		if err := rows.Scan(&m.ItemType, &m.ItemID, &m.ExportedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan exported item row", err)
		}
		items = append(items, mapping.ToDomainExportedItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating exported item rows", err)
	}
	return items, nil
}
