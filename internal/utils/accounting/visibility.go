package accounting

import "github.com/SscSPs/car_expense_app/internal/core/domain"

// ExportSet is an immutable membership index over exported items.
type ExportSet map[domain.ExportKey]struct{}

// NewExportSet indexes the given exported items.
func NewExportSet(items []domain.ExportedItem) ExportSet {
	set := make(ExportSet, len(items))
	for _, it := range items {
		set[it.Key()] = struct{}{}
	}
	return set
}

// Contains reports whether the (kind, id) pair has been exported.
func (s ExportSet) Contains(kind domain.ItemType, id int64) bool {
	_, ok := s[domain.ExportKey{ItemType: kind, ItemID: id}]
	return ok
}

// Unexported keeps the items whose (kind, id) is not in exported. Input order is preserved.
func Unexported[T any](items []T, kind domain.ItemType, exported ExportSet, id func(T) int64) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if exported.Contains(kind, id(it)) {
			continue
		}
		out = append(out, it)
	}
	return out
}
