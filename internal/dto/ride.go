package dto

import (
	"time"

	"github.com/SscSPs/car_expense_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRideRequest defines the data needed to record a ride.
type CreateRideRequest struct {
	Driver   string           `json:"driver" binding:"required,participant"`
	Distance *decimal.Decimal `json:"distance" binding:"required"` // km
	Date     string           `json:"date" binding:"required"`
}

// CreateRideResponse is returned after a ride was recorded.
type CreateRideResponse struct {
	ID int64 `json:"id"`
}

// RideResponse defines the data returned for a ride.
type RideResponse struct {
	ID        int64           `json:"id"`
	Driver    string          `json:"driver"`
	Distance  decimal.Decimal `json:"distance"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}

// UnexportedRideResponse is a ride not yet exported, with the expense it belongs to if any.
type UnexportedRideResponse struct {
	RideResponse
	ExpenseID          *int64  `json:"expense_id,omitempty"`
	ExpenseDescription *string `json:"expense_description,omitempty"`
}

// ListRidesParams holds the optional cursor pagination of GET /rides.
type ListRidesParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken string `form:"nextToken"`
}

// ListRidesResult is the page returned by the ride service.
type ListRidesResult struct {
	Rides     []domain.Ride
	NextToken *string
}

// ToRideResponse converts a domain.Ride to RideResponse DTO.
func ToRideResponse(r domain.Ride) RideResponse {
	return RideResponse{
		ID:        r.RideID,
		Driver:    string(r.Driver),
		Distance:  r.Distance,
		Date:      r.Date,
		CreatedAt: r.CreatedAt,
	}
}

// ToRideResponses converts a slice of domain.Ride to []RideResponse.
func ToRideResponses(rides []domain.Ride) []RideResponse {
	responses := make([]RideResponse, len(rides))
	for i, r := range rides {
		responses[i] = ToRideResponse(r)
	}
	return responses
}

// ToUnexportedRideResponses converts annotated rides to their response DTOs.
func ToUnexportedRideResponses(rides []domain.LinkedRide) []UnexportedRideResponse {
	responses := make([]UnexportedRideResponse, len(rides))
	for i, r := range rides {
		responses[i] = UnexportedRideResponse{
			RideResponse:       ToRideResponse(r.Ride),
			ExpenseID:          r.ExpenseID,
			ExpenseDescription: r.ExpenseDescription,
		}
	}
	return responses
}
