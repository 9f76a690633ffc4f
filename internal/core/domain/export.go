package domain

import "time"

// ItemType is the kind of ledger row that can be marked as exported.
type ItemType string

const (
	ItemRide    ItemType = "ride"
	ItemExpense ItemType = "expense"
	ItemBalance ItemType = "balance"
)

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	switch t {
	case ItemRide, ItemExpense, ItemBalance:
		return true
	}
	return false
}

// ExportedItem marks a ride, expense or balance as synchronized to an external bookkeeping tool.
type ExportedItem struct {
	ItemType   ItemType  `json:"item_type"`
	ItemID     int64     `json:"item_id"`
	ExportedAt time.Time `json:"exported_at"`
}

// ExportKey identifies an exported item.
type ExportKey struct {
	ItemType ItemType
	ItemID   int64
}

// Key returns the identity of the exported item.
func (e ExportedItem) Key() ExportKey {
	return ExportKey{ItemType: e.ItemType, ItemID: e.ItemID}
}
