package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ride is a row of the rides table.
type Ride struct {
	ID        int64           `json:"id"`
	Driver    string          `json:"driver"`
	Distance  decimal.Decimal `json:"distance"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}
