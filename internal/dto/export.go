package dto

import (
	"time"

	"github.com/SscSPs/car_expense_app/internal/core/domain"
)

// MarkExportedRequest flags items of one kind as exported.
type MarkExportedRequest struct {
	ItemType string  `json:"itemType" binding:"required,oneof=ride expense balance"`
	ItemIDs  []int64 `json:"itemIds" binding:"required,min=1,dive,gt=0"`
}

// MarkExportedResponse reports how many items were newly marked.
type MarkExportedResponse struct {
	Marked int `json:"marked"`
}

// ExportedItemResponse defines the data returned for an exported item.
type ExportedItemResponse struct {
	ItemType   string    `json:"item_type"`
	ItemID     int64     `json:"item_id"`
	ExportedAt time.Time `json:"exported_at"`
}

// ToExportedItemResponses converts exported items to their response DTOs.
func ToExportedItemResponses(items []domain.ExportedItem) []ExportedItemResponse {
	out := make([]ExportedItemResponse, len(items))
	for i, it := range items {
		out[i] = ExportedItemResponse{
			ItemType:   string(it.ItemType),
			ItemID:     it.ItemID,
			ExportedAt: it.ExportedAt,
		}
	}
	return out
}
