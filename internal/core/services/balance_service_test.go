package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/car_expense_app/internal/adapters/cache"
	"github.com/SscSPs/car_expense_app/internal/core/domain"
	portssvc "github.com/SscSPs/car_expense_app/internal/core/ports/services"
	"github.com/SscSPs/car_expense_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BalanceServiceTestSuite struct {
	suite.Suite
	balanceRepo *MockBalanceRepository
	exportRepo  *MockExportRepository
	cache       *MockSettlementCache
	service     portssvc.BalanceSvcFacade
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.balanceRepo = new(MockBalanceRepository)
	suite.exportRepo = new(MockExportRepository)
	suite.cache = new(MockSettlementCache)
	suite.service = services.NewBalanceService(suite.balanceRepo, suite.exportRepo, suite.cache)
}

func bal(id, expenseID int64, from, to string, amount int64) domain.Balance {
	return domain.Balance{BalanceID: id, ExpenseID: expenseID, From: domain.Participant(from), To: domain.Participant(to), Amount: decimal.NewFromInt(amount)}
}

func (suite *BalanceServiceTestSuite) TestTotalBalances_CacheMissComputesAndStores() {
	ctx := context.Background()
	balances := []domain.Balance{bal(1, 1, "A", "B", 30), bal(2, 2, "B", "A", 10)}

	suite.cache.On("Generation", ctx).Return(int64(3), nil).Once()
	suite.cache.On("GetSettlements", ctx, int64(3), "settlements:totals").Return(nil, false, nil).Once()
	suite.balanceRepo.On("ListBalances", ctx).Return(balances, nil).Once()
	suite.cache.On("SetSettlements", ctx, int64(3), "settlements:totals", mock.AnythingOfType("[]domain.Settlement")).Return(nil).Once()

	rows, err := suite.service.TotalBalances(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)
	suite.Equal(domain.Participant("A"), rows[0].From)
	suite.True(rows[0].Amount.Equal(decimal.NewFromInt(30)))
	suite.Equal(domain.Participant("B"), rows[1].From)
	suite.True(rows[1].Amount.Equal(decimal.NewFromInt(10)))
	suite.cache.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestTotalBalances_CacheHitSkipsRepository() {
	ctx := context.Background()
	cached := []domain.Settlement{{From: "A", To: "B", Amount: decimal.NewFromInt(5)}}

	suite.cache.On("Generation", ctx).Return(int64(0), nil).Once()
	suite.cache.On("GetSettlements", ctx, int64(0), "settlements:totals").Return(cached, true, nil).Once()

	rows, err := suite.service.TotalBalances(ctx)

	suite.Require().NoError(err)
	suite.Equal(cached, rows)
	suite.balanceRepo.AssertNotCalled(suite.T(), "ListBalances", mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestTotalBalances_CacheErrorFallsBack() {
	ctx := context.Background()

	suite.cache.On("Generation", ctx).Return(int64(1), nil).Once()
	suite.cache.On("GetSettlements", ctx, int64(1), "settlements:totals").Return(nil, false, assert.AnError).Once()
	suite.balanceRepo.On("ListBalances", ctx).Return([]domain.Balance{bal(1, 1, "A", "B", 3)}, nil).Once()
	suite.cache.On("SetSettlements", ctx, int64(1), "settlements:totals", mock.Anything).Return(assert.AnError).Once()

	rows, err := suite.service.TotalBalances(ctx)

	suite.Require().NoError(err)
	suite.Len(rows, 1)
}

func (suite *BalanceServiceTestSuite) TestTotalBalances_GenerationErrorBypassesCache() {
	ctx := context.Background()

	suite.cache.On("Generation", ctx).Return(int64(0), assert.AnError).Once()
	suite.balanceRepo.On("ListBalances", ctx).Return([]domain.Balance{bal(1, 1, "A", "B", 3)}, nil).Once()

	rows, err := suite.service.TotalBalances(ctx)

	suite.Require().NoError(err)
	suite.Len(rows, 1)
	suite.cache.AssertNotCalled(suite.T(), "GetSettlements", mock.Anything, mock.Anything, mock.Anything)
	suite.cache.AssertNotCalled(suite.T(), "SetSettlements", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// A write that commits and invalidates while totals are being computed must not leave
// the pre-write totals in the cache.
func (suite *BalanceServiceTestSuite) TestTotalBalances_WriteDuringComputeIsNotMasked() {
	ctx := context.Background()
	settlementCache := cache.NewInMemoryCache()
	service := services.NewBalanceService(suite.balanceRepo, suite.exportRepo, settlementCache)

	suite.balanceRepo.On("ListBalances", ctx).Return([]domain.Balance{}, nil).Run(func(mock.Arguments) {
		suite.Require().NoError(settlementCache.Invalidate(ctx))
	}).Once()
	suite.balanceRepo.On("ListBalances", ctx).Return([]domain.Balance{bal(1, 1, "Bram", "Anne", 30)}, nil).Once()

	rows, err := service.TotalBalances(ctx)
	suite.Require().NoError(err)
	suite.Empty(rows)

	rows, err = service.TotalBalances(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal(domain.Participant("Bram"), rows[0].From)
	suite.True(rows[0].Amount.Equal(decimal.NewFromInt(30)))

	// Stored under the current generation, so the third read is served from the cache.
	rows, err = service.TotalBalances(ctx)
	suite.Require().NoError(err)
	suite.Len(rows, 1)
	suite.balanceRepo.AssertNumberOfCalls(suite.T(), "ListBalances", 2)
}

func (suite *BalanceServiceTestSuite) TestExpenseBalances_FiltersExportedAndNets() {
	ctx := context.Background()
	details := []domain.ExpenseBalanceDetail{
		{Balance: bal(1, 1, "A", "B", 30), Description: "Fuel"},
		{Balance: bal(2, 2, "B", "A", 10), Description: "Toll"},
		{Balance: bal(3, 3, "B", "A", 50), Description: "Exported expense"},
		{Balance: bal(4, 4, "B", "A", 70), Description: "Exported balance"},
	}
	exported := []domain.ExportedItem{
		{ItemType: domain.ItemExpense, ItemID: 3},
		{ItemType: domain.ItemBalance, ItemID: 4},
		{ItemType: domain.ItemRide, ItemID: 1},
	}

	suite.cache.On("Generation", ctx).Return(int64(0), nil).Once()
	suite.balanceRepo.On("ListBalanceDetails", ctx).Return(details, nil).Once()
	suite.exportRepo.On("ListExported", ctx, mock.Anything).Return(exported, nil).Once()
	suite.cache.On("GetSettlements", ctx, int64(0), "settlements:pending-net").Return(nil, false, nil).Once()
	suite.cache.On("SetSettlements", ctx, int64(0), "settlements:pending-net", mock.Anything).Return(nil).Once()

	result, err := suite.service.ExpenseBalances(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(result.Details, 2)
	suite.Equal(int64(1), result.Details[0].BalanceID)
	suite.Equal(int64(2), result.Details[1].BalanceID)

	// A owes B 30, B owes A 10: A's net is -20.
	suite.Require().Len(result.Settlements, 1)
	suite.Equal(domain.Participant("A"), result.Settlements[0].From)
	suite.Equal(domain.Participant("B"), result.Settlements[0].To)
	suite.True(result.Settlements[0].Amount.Equal(decimal.NewFromInt(20)))
}

func (suite *BalanceServiceTestSuite) TestSummary_OrdersByRecordingTime() {
	ctx := context.Background()
	recorded := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	details := []domain.ExpenseBalanceDetail{
		// later expense date, recorded first
		{Balance: bal(1, 1, "Bram", "Anne", 5), ExpenseDate: recorded.AddDate(0, 0, 10), ExpenseCreatedAt: recorded},
		{Balance: bal(2, 2, "Bram", "Anne", 6), ExpenseDate: recorded, ExpenseCreatedAt: recorded.Add(time.Hour)},
		{Balance: bal(4, 3, "Anne", "Bram", 2), ExpenseDate: recorded, ExpenseCreatedAt: recorded.Add(time.Hour)},
		{Balance: bal(3, 3, "Bram", "Anne", 1), ExpenseDate: recorded, ExpenseCreatedAt: recorded.Add(time.Hour)},
	}
	suite.balanceRepo.On("ListBalanceDetails", ctx).Return(details, nil).Once()

	rows, err := suite.service.Summary(ctx)

	suite.Require().NoError(err)
	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.BalanceID
	}
	suite.Equal([]int64{3, 4, 2, 1}, ids)
}

func (suite *BalanceServiceTestSuite) TestSummary_RepoError() {
	ctx := context.Background()
	suite.balanceRepo.On("ListBalanceDetails", ctx).Return(nil, assert.AnError).Once()

	rows, err := suite.service.Summary(ctx)

	suite.Nil(rows)
	suite.ErrorIs(err, assert.AnError)
}

func TestBalanceService(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
