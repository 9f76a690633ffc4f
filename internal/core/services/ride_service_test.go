package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/car_expense_app/internal/apperrors"
	"github.com/SscSPs/car_expense_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_expense_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/car_expense_app/internal/core/ports/services"
	"github.com/SscSPs/car_expense_app/internal/core/services"
	"github.com/SscSPs/car_expense_app/internal/dto"
	"github.com/SscSPs/car_expense_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RideServiceTestSuite struct {
	suite.Suite
	rideRepo   *MockRideRepository
	exportRepo *MockExportRepository
	service    portssvc.RideSvcFacade
}

func (suite *RideServiceTestSuite) SetupTest() {
	suite.rideRepo = new(MockRideRepository)
	suite.exportRepo = new(MockExportRepository)
	suite.service = services.NewRideService(suite.rideRepo, suite.exportRepo, testParticipants)
}

func (suite *RideServiceTestSuite) TestCreateRide_Success() {
	ctx := context.Background()
	req := dto.CreateRideRequest{Driver: "Bram", Distance: decimalPtr("12.5"), Date: "2024-05-01T08:30:00"}

	suite.rideRepo.On("SaveRide", ctx, mock.MatchedBy(func(r domain.Ride) bool {
		return r.Driver == "Bram" && r.Distance.Equal(decimal.RequireFromString("12.5")) &&
			r.Date.Equal(time.Date(2024, time.May, 1, 8, 30, 0, 0, time.UTC))
	})).Return(&domain.Ride{RideID: 3, Driver: "Bram", Distance: decimal.RequireFromString("12.5")}, nil).Once()

	ride, err := suite.service.CreateRide(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(int64(3), ride.RideID)
	suite.rideRepo.AssertExpectations(suite.T())
}

func (suite *RideServiceTestSuite) TestCreateRide_Rejected() {
	ctx := context.Background()
	cases := map[string]dto.CreateRideRequest{
		"unknown driver": {Driver: "Cas", Distance: decimalPtr("1"), Date: "2024-05-01"},
		"zero distance":  {Driver: "Anne", Distance: decimalPtr("0"), Date: "2024-05-01"},
		"no distance":    {Driver: "Anne", Date: "2024-05-01"},
		"bad date":       {Driver: "Anne", Distance: decimalPtr("1"), Date: "05/01/2024"},
	}
	for name, req := range cases {
		ride, err := suite.service.CreateRide(ctx, req)
		suite.Nil(ride, name)
		suite.ErrorIs(err, apperrors.ErrValidation, name)
	}
	suite.rideRepo.AssertNotCalled(suite.T(), "SaveRide", mock.Anything, mock.Anything)
}

func (suite *RideServiceTestSuite) TestListRides_PageAndToken() {
	ctx := context.Background()
	date := time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC)
	created := date.Add(time.Hour)
	rides := []domain.Ride{
		{RideID: 5, Date: date, CreatedAt: created},
		{RideID: 4, Date: date, CreatedAt: created},
		{RideID: 3, Date: date, CreatedAt: created},
	}

	suite.rideRepo.On("ListRides", ctx, 3, (*portsrepo.RideCursor)(nil)).Return(rides, nil).Once()

	result, err := suite.service.ListRides(ctx, dto.ListRidesParams{Limit: 2})

	suite.Require().NoError(err)
	suite.Len(result.Rides, 2)
	suite.Require().NotNil(result.NextToken)

	d, c, id, err := pagination.DecodeRideToken(*result.NextToken)
	suite.Require().NoError(err)
	suite.True(d.Equal(date))
	suite.True(c.Equal(created))
	suite.Equal(int64(4), id)
}

func (suite *RideServiceTestSuite) TestListRides_WithCursor() {
	ctx := context.Background()
	date := time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC)
	token := pagination.EncodeRideToken(date, date, 4)

	suite.rideRepo.On("ListRides", ctx, 3, &portsrepo.RideCursor{Date: date, CreatedAt: date, RideID: 4}).
		Return([]domain.Ride{{RideID: 3}}, nil).Once()

	result, err := suite.service.ListRides(ctx, dto.ListRidesParams{Limit: 2, NextToken: token})

	suite.Require().NoError(err)
	suite.Len(result.Rides, 1)
	suite.Nil(result.NextToken)
}

func (suite *RideServiceTestSuite) TestListRides_InvalidToken() {
	_, err := suite.service.ListRides(context.Background(), dto.ListRidesParams{NextToken: "%%%"})
	suite.ErrorIs(err, services.ErrInvalidPageToken)
}

func (suite *RideServiceTestSuite) TestListUnexportedRides() {
	ctx := context.Background()
	expenseID := int64(9)
	rides := []domain.LinkedRide{
		{Ride: domain.Ride{RideID: 1}},
		{Ride: domain.Ride{RideID: 2}, ExpenseID: &expenseID},
	}
	kind := domain.ItemRide

	suite.rideRepo.On("ListRidesWithExpense", ctx).Return(rides, nil).Once()
	suite.exportRepo.On("ListExported", ctx, &kind).
		Return([]domain.ExportedItem{{ItemType: domain.ItemRide, ItemID: 1}}, nil).Once()

	pending, err := suite.service.ListUnexportedRides(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal(int64(2), pending[0].RideID)
	suite.Equal(&expenseID, pending[0].ExpenseID)
}

func TestRideService(t *testing.T) {
	suite.Run(t, new(RideServiceTestSuite))
}
