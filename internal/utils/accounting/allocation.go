package accounting

import (
	"fmt"

	"github.com/SscSPs/car_expense_app/internal/apperrors"
	"github.com/SscSPs/car_expense_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrNoRides           = fmt.Errorf("%w: at least one ride must be selected", apperrors.ErrValidation)
	ErrUnknownRide       = fmt.Errorf("%w: ride does not exist", apperrors.ErrValidation)
	ErrDuplicateRide     = fmt.Errorf("%w: ride selected more than once", apperrors.ErrValidation)
	ErrNegativeDistance  = fmt.Errorf("%w: ride distance must not be negative", apperrors.ErrValidation)
	ErrZeroDistance      = fmt.Errorf("%w: total distance of the selected rides must be greater than zero", apperrors.ErrValidation)
	ErrNonPositiveAmount = fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	ErrAmountPrecision   = fmt.Errorf("%w: expense amount must not have more than %d decimals", apperrors.ErrValidation, StoragePlaces)
)

// ValidateAmount checks that an expense amount is positive and storable without rounding.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrNonPositiveAmount, amount.String())
	}
	if !amount.Equal(RoundForStorage(amount)) {
		return fmt.Errorf("%w: got %s", ErrAmountPrecision, amount.String())
	}
	return nil
}

// Allocation is the result of dividing one expense across the drivers of its rides.
// Percentages, shares and balance amounts are unrounded.
type Allocation struct {
	Links    []domain.RideExpenseLink
	Balances []domain.Balance
	Shares   map[domain.Participant]decimal.Decimal
	Total    decimal.Decimal // total distance in km
}

// Allocate computes each ride's percentage of the total distance and each driver's share of
// the expense amount. Every driver other than the payer whose share is still positive after
// rounding for storage gets a balance towards the payer. Links and balances carry expense.ExpenseID, which may still be zero when
// the expense has not been persisted yet.
//
// rides may contain more rows than rideIDs; only the selected ones are used, in rideIDs order.
func Allocate(expense domain.Expense, rideIDs []int64, rides []domain.Ride) (*Allocation, error) {
	if len(rideIDs) == 0 {
		return nil, ErrNoRides
	}
	if err := ValidateAmount(expense.Amount); err != nil {
		return nil, err
	}

	byID := make(map[int64]domain.Ride, len(rides))
	for _, r := range rides {
		byID[r.RideID] = r
	}

	selected := make([]domain.Ride, 0, len(rideIDs))
	seen := make(map[int64]bool, len(rideIDs))
	total := decimal.Zero
	for _, id := range rideIDs {
		if seen[id] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateRide, id)
		}
		seen[id] = true

		ride, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownRide, id)
		}
		if ride.Distance.IsNegative() {
			return nil, fmt.Errorf("%w: ride %d", ErrNegativeDistance, id)
		}
		selected = append(selected, ride)
		total = total.Add(ride.Distance)
	}

	if !total.IsPositive() {
		return nil, ErrZeroDistance
	}

	alloc := &Allocation{
		Links:  make([]domain.RideExpenseLink, 0, len(selected)),
		Shares: make(map[domain.Participant]decimal.Decimal),
		Total:  total,
	}

	driverDistance := make(map[domain.Participant]decimal.Decimal)
	drivers := make([]domain.Participant, 0)
	for _, ride := range selected {
		alloc.Links = append(alloc.Links, domain.RideExpenseLink{
			RideID:     ride.RideID,
			ExpenseID:  expense.ExpenseID,
			Percentage: hundred.Mul(ride.Distance).Div(total),
		})
		if _, ok := driverDistance[ride.Driver]; !ok {
			drivers = append(drivers, ride.Driver)
		}
		driverDistance[ride.Driver] = driverDistance[ride.Driver].Add(ride.Distance)
	}

	domain.SortParticipants(drivers)
	for _, driver := range drivers {
		share := expense.Amount.Mul(driverDistance[driver]).Div(total)
		alloc.Shares[driver] = share
		// a sub-cent share would be stored as a zero balance
		if driver == expense.Payer || !RoundForStorage(share).IsPositive() {
			continue
		}
		alloc.Balances = append(alloc.Balances, domain.Balance{
			ExpenseID: expense.ExpenseID,
			From:      driver,
			To:        expense.Payer,
			Amount:    share,
		})
	}

	return alloc, nil
}
