package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/car_expense_app/internal/apperrors"
	"github.com/SscSPs/car_expense_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_expense_app/internal/core/ports/repositories"
	"github.com/SscSPs/car_expense_app/internal/utils/accounting"
)

// Store keeps every table in process memory. It implements all repository ports
// and is used by `serve --memory` and by the handler tests.
type Store struct {
	mu sync.RWMutex

	rides    []domain.Ride
	expenses []domain.Expense
	links    map[int64]domain.RideExpenseLink // keyed by ride id, one link per ride
	balances []domain.Balance
	exported map[domain.ExportKey]domain.ExportedItem

	nextRideID    int64
	nextExpenseID int64
	nextBalanceID int64

	now func() time.Time
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		links:    make(map[int64]domain.RideExpenseLink),
		exported: make(map[domain.ExportKey]domain.ExportedItem),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

var (
	_ portsrepo.RideRepositoryFacade    = (*Store)(nil)
	_ portsrepo.ExpenseRepositoryFacade = (*Store)(nil)
	_ portsrepo.BalanceRepositoryFacade = (*Store)(nil)
	_ portsrepo.ExportRepositoryFacade  = (*Store)(nil)
)

// NewRepositoryProvider wires a single Store behind every repository port.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RideRepo:    store,
		ExpenseRepo: store,
		BalanceRepo: store,
		ExportRepo:  store,
	}
}

// SaveRide appends a ride with the next id.
func (s *Store) SaveRide(_ context.Context, ride domain.Ride) (*domain.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextRideID++
	ride.RideID = s.nextRideID
	ride.CreatedAt = s.now()
	s.rides = append(s.rides, ride)
	return &ride, nil
}

func rideBefore(a, b domain.Ride) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.RideID > b.RideID
}

// sortedRides returns a newest-first copy. Callers hold the lock.
func (s *Store) sortedRides() []domain.Ride {
	rides := make([]domain.Ride, len(s.rides))
	copy(rides, s.rides)
	sort.SliceStable(rides, func(i, j int) bool { return rideBefore(rides[i], rides[j]) })
	return rides
}

// ListRides returns rides newest first, after the cursor and capped at limit when positive.
func (s *Store) ListRides(_ context.Context, limit int, after *portsrepo.RideCursor) ([]domain.Ride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pivot *domain.Ride
	if after != nil {
		pivot = &domain.Ride{Date: after.Date, CreatedAt: after.CreatedAt, RideID: after.RideID}
	}

	result := []domain.Ride{}
	for _, r := range s.sortedRides() {
		if pivot != nil && !rideBefore(*pivot, r) {
			continue
		}
		result = append(result, r)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

// FindRidesByIDs returns the stored rides among ids.
func (s *Store) FindRidesByIDs(_ context.Context, ids []int64) ([]domain.Ride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	result := []domain.Ride{}
	for _, r := range s.sortedRides() {
		if _, ok := want[r.RideID]; ok {
			result = append(result, r)
		}
	}
	return result, nil
}

// ListLinkedRides returns rides with a link row.
func (s *Store) ListLinkedRides(_ context.Context) ([]domain.Ride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []domain.Ride{}
	for _, r := range s.sortedRides() {
		if _, ok := s.links[r.RideID]; ok {
			result = append(result, r)
		}
	}
	return result, nil
}

// ListRidesWithExpense returns every ride annotated with its expense, if any.
func (s *Store) ListRidesWithExpense(_ context.Context) ([]domain.LinkedRide, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []domain.LinkedRide{}
	for _, r := range s.sortedRides() {
		lr := domain.LinkedRide{Ride: r}
		if link, ok := s.links[r.RideID]; ok {
			if e, found := s.findExpense(link.ExpenseID); found {
				id, desc := e.ExpenseID, e.Description
				lr.ExpenseID = &id
				lr.ExpenseDescription = &desc
			}
		}
		result = append(result, lr)
	}
	return result, nil
}

// FindLinkedRideIDs returns the ids that already have a link.
func (s *Store) FindLinkedRideIDs(_ context.Context, ids []int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	linked := []int64{}
	for _, id := range ids {
		if _, ok := s.links[id]; ok {
			linked = append(linked, id)
		}
	}
	return linked, nil
}

func (s *Store) findExpense(id int64) (domain.Expense, bool) {
	for _, e := range s.expenses {
		if e.ExpenseID == id {
			return e, true
		}
	}
	return domain.Expense{}, false
}

func (s *Store) hasRide(id int64) bool {
	for _, r := range s.rides {
		if r.RideID == id {
			return true
		}
	}
	return false
}

// SaveExpense stores the expense with its links and balances, all or nothing.
// Constraint checks mirror the unique and foreign keys of the SQL schema.
func (s *Store) SaveExpense(_ context.Context, expense domain.Expense, links []domain.RideExpenseLink, balances []domain.Balance) (*domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[int64]struct{}, len(links))
	for _, l := range links {
		if _, dup := s.links[l.RideID]; dup {
			return nil, apperrors.NewAppError(500, "ride already linked to another expense", nil)
		}
		if _, dup := seen[l.RideID]; dup {
			return nil, apperrors.NewAppError(500, "ride linked twice in one expense", nil)
		}
		if !s.hasRide(l.RideID) {
			return nil, apperrors.NewAppError(500, "link references a missing ride", nil)
		}
		seen[l.RideID] = struct{}{}
	}
	if !accounting.RoundForStorage(expense.Amount).IsPositive() {
		return nil, apperrors.NewAppError(500, "expense amount must be positive", nil)
	}
	for _, b := range balances {
		if b.From == b.To {
			return nil, apperrors.NewAppError(500, "balance from and to must differ", nil)
		}
		if accounting.RoundForStorage(b.Amount).IsNegative() {
			return nil, apperrors.NewAppError(500, "balance amount must not be negative", nil)
		}
	}

	now := s.now()
	s.nextExpenseID++
	expense.ExpenseID = s.nextExpenseID
	expense.CreatedAt = now
	expense.Amount = accounting.RoundForStorage(expense.Amount)
	s.expenses = append(s.expenses, expense)

	for _, l := range links {
		l.ExpenseID = expense.ExpenseID
		l.Percentage = accounting.RoundForStorage(l.Percentage)
		s.links[l.RideID] = l
	}
	for _, b := range balances {
		s.nextBalanceID++
		b.BalanceID = s.nextBalanceID
		b.ExpenseID = expense.ExpenseID
		b.Amount = accounting.RoundForStorage(b.Amount)
		b.CreatedAt = now
		s.balances = append(s.balances, b)
	}
	return &expense, nil
}

func expenseBefore(a, b domain.Expense) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ExpenseID > b.ExpenseID
}

// ListExpenses returns expenses newest first.
func (s *Store) ListExpenses(_ context.Context) ([]domain.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expenses := make([]domain.Expense, len(s.expenses))
	copy(expenses, s.expenses)
	sort.SliceStable(expenses, func(i, j int) bool { return expenseBefore(expenses[i], expenses[j]) })
	return expenses, nil
}

// ListBalances returns every balance in insertion order.
func (s *Store) ListBalances(_ context.Context) ([]domain.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	balances := make([]domain.Balance, len(s.balances))
	copy(balances, s.balances)
	return balances, nil
}

// ListBalanceDetails joins balances with their expense, newest expense first.
func (s *Store) ListBalanceDetails(_ context.Context) ([]domain.ExpenseBalanceDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	details := []domain.ExpenseBalanceDetail{}
	expenses := make(map[int64]domain.Expense, len(s.expenses))
	for _, e := range s.expenses {
		expenses[e.ExpenseID] = e
	}
	for _, b := range s.balances {
		e, ok := expenses[b.ExpenseID]
		if !ok {
			continue
		}
		details = append(details, domain.ExpenseBalanceDetail{
			Balance:          b,
			Description:      e.Description,
			ExpenseDate:      e.Date,
			ExpenseTotal:     e.Amount,
			ExpenseCreatedAt: e.CreatedAt,
		})
	}
	sort.SliceStable(details, func(i, j int) bool {
		ei, ej := expenses[details[i].ExpenseID], expenses[details[j].ExpenseID]
		if ei.ExpenseID != ej.ExpenseID {
			return expenseBefore(ei, ej)
		}
		return details[i].BalanceID < details[j].BalanceID
	})
	return details, nil
}

// MarkExported adds markers that are not present yet.
func (s *Store) MarkExported(_ context.Context, items []domain.ExportedItem) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	marked := 0
	for _, item := range items {
		if _, ok := s.exported[item.Key()]; ok {
			continue
		}
		s.exported[item.Key()] = item
		marked++
	}
	return marked, nil
}

// ListExported returns markers newest first, optionally of one kind.
func (s *Store) ListExported(_ context.Context, kind *domain.ItemType) ([]domain.ExportedItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := []domain.ExportedItem{}
	for _, item := range s.exported {
		if kind != nil && item.ItemType != *kind {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].ExportedAt.Equal(items[j].ExportedAt) {
			return items[i].ExportedAt.After(items[j].ExportedAt)
		}
		if items[i].ItemType != items[j].ItemType {
			return items[i].ItemType < items[j].ItemType
		}
		return items[i].ItemID < items[j].ItemID
	})
	return items, nil
}
