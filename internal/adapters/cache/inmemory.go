package cache

import (
	"context"
	"sync"

	"github.com/SscSPs/car_expense_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_expense_app/internal/core/ports/repositories"
)

// InMemoryCache implements SettlementCache in process memory, without expiry.
// Only views of the current generation are kept.
type InMemoryCache struct {
	mu         sync.RWMutex
	generation int64
	entries    map[string][]domain.Settlement
}

// NewInMemoryCache creates an instance of InMemoryCache
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{entries: make(map[string][]domain.Settlement)}
}

var _ portsrepo.SettlementCache = (*InMemoryCache)(nil)

// Generation returns the current generation
func (c *InMemoryCache) Generation(_ context.Context) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation, nil
}

// GetSettlements returns a copy of the cached rows
func (c *InMemoryCache) GetSettlements(_ context.Context, generation int64, key string) ([]domain.Settlement, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if generation != c.generation {
		return nil, false, nil
	}
	rows, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	return append([]domain.Settlement{}, rows...), true, nil
}

// SetSettlements stores a copy of rows under key, unless generation is outdated
func (c *InMemoryCache) SetSettlements(_ context.Context, generation int64, key string, rows []domain.Settlement) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		return nil
	}
	c.entries[key] = append([]domain.Settlement{}, rows...)
	return nil
}

// Invalidate advances the generation and drops every entry
func (c *InMemoryCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.entries = make(map[string][]domain.Settlement)
	return nil
}
