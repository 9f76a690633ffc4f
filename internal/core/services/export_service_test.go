package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/car_expense_app/internal/core/domain"
	portssvc "github.com/SscSPs/car_expense_app/internal/core/ports/services"
	"github.com/SscSPs/car_expense_app/internal/core/services"
	"github.com/SscSPs/car_expense_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExportServiceTestSuite struct {
	suite.Suite
	exportRepo *MockExportRepository
	cache      *MockSettlementCache
	service    portssvc.ExportSvcFacade
}

func (suite *ExportServiceTestSuite) SetupTest() {
	suite.exportRepo = new(MockExportRepository)
	suite.cache = new(MockSettlementCache)
	suite.service = services.NewExportService(suite.exportRepo, suite.cache)
}

func (suite *ExportServiceTestSuite) TestMarkExported_Success() {
	ctx := context.Background()

	suite.exportRepo.On("MarkExported", ctx, mock.MatchedBy(func(items []domain.ExportedItem) bool {
		return len(items) == 2 && items[0].ItemType == domain.ItemExpense && items[0].ItemID == 4 &&
			items[1].ItemID == 5 && !items[0].ExportedAt.IsZero()
	})).Return(1, nil).Once()
	suite.cache.On("Invalidate", ctx).Return(nil).Once()

	marked, err := suite.service.MarkExported(ctx, dto.MarkExportedRequest{ItemType: "expense", ItemIDs: []int64{4, 5}})

	suite.Require().NoError(err)
	suite.Equal(1, marked)
	suite.exportRepo.AssertExpectations(suite.T())
	suite.cache.AssertExpectations(suite.T())
}

func (suite *ExportServiceTestSuite) TestMarkExported_Rejected() {
	ctx := context.Background()

	_, err := suite.service.MarkExported(ctx, dto.MarkExportedRequest{ItemType: "journal", ItemIDs: []int64{1}})
	suite.ErrorIs(err, services.ErrInvalidItemType)

	_, err = suite.service.MarkExported(ctx, dto.MarkExportedRequest{ItemType: "ride"})
	suite.ErrorIs(err, services.ErrNoItems)

	_, err = suite.service.MarkExported(ctx, dto.MarkExportedRequest{ItemType: "ride", ItemIDs: []int64{0}})
	suite.ErrorIs(err, services.ErrInvalidItemID)

	suite.exportRepo.AssertNotCalled(suite.T(), "MarkExported", mock.Anything, mock.Anything)
}

func (suite *ExportServiceTestSuite) TestListExported_KindFilter() {
	ctx := context.Background()
	kind := domain.ItemBalance

	suite.exportRepo.On("ListExported", ctx, &kind).Return([]domain.ExportedItem{{ItemType: kind, ItemID: 2}}, nil).Once()
	suite.exportRepo.On("ListExported", ctx, (*domain.ItemType)(nil)).Return([]domain.ExportedItem{}, nil).Once()

	items, err := suite.service.ListExported(ctx, "balance")
	suite.Require().NoError(err)
	suite.Len(items, 1)

	items, err = suite.service.ListExported(ctx, "")
	suite.Require().NoError(err)
	suite.Empty(items)

	_, err = suite.service.ListExported(ctx, "bogus")
	suite.ErrorIs(err, services.ErrInvalidItemType)
}

func TestExportService(t *testing.T) {
	suite.Run(t, new(ExportServiceTestSuite))
}
