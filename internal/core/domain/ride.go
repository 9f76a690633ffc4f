package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ride is a single recorded trip by one driver.
type Ride struct {
	RideID    int64           `json:"id"`
	Driver    Participant     `json:"driver"`
	Distance  decimal.Decimal `json:"distance"` // km, positive
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}

// LinkedRide is a ride annotated with the expense it was allocated to, if any.
type LinkedRide struct {
	Ride
	ExpenseID          *int64
	ExpenseDescription *string
}
