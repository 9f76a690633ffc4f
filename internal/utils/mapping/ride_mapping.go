package mapping

import (
	"github.com/SscSPs/car_expense_app/internal/core/domain"
	"github.com/SscSPs/car_expense_app/internal/models"
)

// ToModelRide converts a domain Ride to a model Ride
func ToModelRide(d domain.Ride) models.Ride {
	return models.Ride{
		ID:        d.RideID,
		Driver:    string(d.Driver),
		Distance:  d.Distance,
		Date:      d.Date,
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainRide converts a model Ride to a domain Ride
func ToDomainRide(m models.Ride) domain.Ride {
	return domain.Ride{
		RideID:    m.ID,
		Driver:    domain.Participant(m.Driver),
		Distance:  m.Distance,
		Date:      m.Date,
		CreatedAt: m.CreatedAt,
	}
}

// ToDomainRideSlice converts a slice of model Rides to a slice of domain Rides
func ToDomainRideSlice(ms []models.Ride) []domain.Ride {
	ds := make([]domain.Ride, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRide(m)
	}
	return ds
}
