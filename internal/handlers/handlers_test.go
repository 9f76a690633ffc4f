package handlers_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/car_expense_app/internal/core/domain"
	"github.com/SscSPs/car_expense_app/internal/core/services"
	"github.com/SscSPs/car_expense_app/internal/dto"
	"github.com/SscSPs/car_expense_app/internal/handlers"
	"github.com/SscSPs/car_expense_app/internal/middleware"
	"github.com/SscSPs/car_expense_app/internal/platform/config"
	"github.com/SscSPs/car_expense_app/internal/repositories/memory"
	"github.com/SscSPs/car_expense_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type HandlersTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		IsProduction:       true,
		Participants:       []string{"Anne", "Bram"},
		RateLimit:          "1000-M",
		CORSAllowedOrigins: []string{"*"},
	}
	logger := slog.New(slog.DiscardHandler)
	container := services.NewServiceContainer(domain.NewParticipantSet(cfg.Participants...), memory.NewRepositoryProvider(memory.NewStore()))

	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(logger))
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, container, utils.InitializePosthogClient("", "", logger)))
}

func (suite *HandlersTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) createRide(driver, distance, date string) int64 {
	w := suite.do(http.MethodPost, "/api/rides", gin.H{"driver": driver, "distance": distance, "date": date})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.CreateRideResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func (suite *HandlersTestSuite) TestHealthAndAPITest() {
	w := suite.do(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())

	w = suite.do(http.MethodGet, "/api/test", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"message":"API is working!"}`, w.Body.String())
	suite.NotEmpty(w.Header().Get("X-Request-ID"))
	suite.Equal("1000", w.Header().Get("X-RateLimit-Limit"))
}

func (suite *HandlersTestSuite) TestParticipants() {
	w := suite.do(http.MethodGet, "/api/participants", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`["Anne","Bram"]`, w.Body.String())
}

func (suite *HandlersTestSuite) TestUnknownRoute() {
	w := suite.do(http.MethodGet, "/api/nothing-here", nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.JSONEq(`{"error":"Endpoint not found"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestCreateRide_UnknownDriver() {
	w := suite.do(http.MethodPost, "/api/rides", gin.H{"driver": "Mallory", "distance": "10", "date": "2024-03-01"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "participant")
}

func (suite *HandlersTestSuite) TestCreateRide_NonPositiveDistance() {
	w := suite.do(http.MethodPost, "/api/rides", gin.H{"driver": "Anne", "distance": "0", "date": "2024-03-01"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestExpenseFlow() {
	anne := suite.createRide("Anne", "10", "2024-03-01")
	bram := suite.createRide("Bram", "30", "2024-03-02")

	w := suite.do(http.MethodPost, "/api/expenses", gin.H{
		"amount": "40", "description": "Fuel", "date": "2024-03-03", "payer": "Anne", "rideIds": []int64{anne, bram},
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var created dto.CreateExpenseResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	suite.Equal("Expense added successfully", created.Message)

	w = suite.do(http.MethodGet, "/api/summary", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var summary []dto.SummaryRowResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &summary))
	suite.Require().Len(summary, 1)
	suite.Equal(dto.SummaryRowResponse{
		ExpenseID: created.ID, ExpenseDescription: "Fuel", FromUser: "Bram", ToUser: "Anne", Amount: "30.00", TotalAmount: "40.00",
	}, summary[0])

	w = suite.do(http.MethodGet, "/api/summary/balances", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var pending dto.ExpenseBalancesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &pending))
	suite.Require().Len(pending.DetailedBalances, 1)
	suite.Equal([]dto.SettlementResponse{{FromUser: "Bram", ToUser: "Anne", Amount: "30.00"}}, pending.TotalBalances)

	w = suite.do(http.MethodGet, "/api/rides/linked", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var linked []dto.RideResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &linked))
	suite.Len(linked, 2)

	// Rides can belong to one expense only.
	w = suite.do(http.MethodPost, "/api/expenses", gin.H{
		"amount": "5", "description": "Toll", "date": "2024-03-04", "payer": "Bram", "rideIds": []int64{anne},
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestCreateExpense_AmountsBelowOneCent() {
	anne := suite.createRide("Anne", "1000", "2024-03-01")
	bram := suite.createRide("Bram", "1", "2024-03-02")

	w := suite.do(http.MethodPost, "/api/expenses", gin.H{
		"amount": "0.004", "description": "Rounding", "date": "2024-03-03", "payer": "Anne", "rideIds": []int64{anne, bram},
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "decimals")

	// Bram's share is a fraction of a cent, so no balance is recorded for it.
	w = suite.do(http.MethodPost, "/api/expenses", gin.H{
		"amount": "0.01", "description": "Parking", "date": "2024-03-03", "payer": "Anne", "rideIds": []int64{anne, bram},
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.do(http.MethodGet, "/api/summary", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())

	w = suite.do(http.MethodGet, "/api/expenses", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var expenses []dto.ExpenseResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &expenses))
	suite.Require().Len(expenses, 1)
	suite.Equal("0.01", expenses[0].Amount)
}

func (suite *HandlersTestSuite) TestSummary_LatestRecordedExpenseFirst() {
	first := suite.createRide("Bram", "10", "2024-03-01")
	second := suite.createRide("Bram", "20", "2024-03-02")

	w := suite.do(http.MethodPost, "/api/expenses", gin.H{
		"amount": "12", "description": "Fuel", "date": "2024-03-10", "payer": "Anne", "rideIds": []int64{first},
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	// Recorded later, dated earlier.
	w = suite.do(http.MethodPost, "/api/expenses", gin.H{
		"amount": "8", "description": "Toll", "date": "2024-03-01", "payer": "Anne", "rideIds": []int64{second},
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.do(http.MethodGet, "/api/summary", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var summary []dto.SummaryRowResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &summary))
	suite.Require().Len(summary, 2)
	suite.Equal("Toll", summary[0].ExpenseDescription)
	suite.Equal("Fuel", summary[1].ExpenseDescription)

	w = suite.do(http.MethodGet, "/api/expense-balances", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var pending dto.ExpenseBalancesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &pending))
	suite.Require().Len(pending.DetailedBalances, 2)
	suite.Equal("Fuel", pending.DetailedBalances[0].Description)
}

func (suite *HandlersTestSuite) TestExportHidesPendingBalances() {
	anne := suite.createRide("Anne", "10", "2024-03-01")
	bram := suite.createRide("Bram", "30", "2024-03-02")
	w := suite.do(http.MethodPost, "/api/expenses", gin.H{
		"amount": "40", "description": "Fuel", "date": "2024-03-03", "payer": "Anne", "rideIds": []int64{anne, bram},
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	var created dto.CreateExpenseResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))

	w = suite.do(http.MethodPost, "/api/exports", gin.H{"itemType": "expense", "itemIds": []int64{created.ID}})
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"marked":1}`, w.Body.String())

	w = suite.do(http.MethodPost, "/api/exports", gin.H{"itemType": "ride", "itemIds": []int64{anne}})
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/expense-balances", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"detailedBalances":[],"totalBalances":[]}`, w.Body.String())

	// Totals ignore exports.
	w = suite.do(http.MethodGet, "/api/total-balances", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[{"from_user":"Bram","to_user":"Anne","total_amount":"30.00"}]`, w.Body.String())

	w = suite.do(http.MethodGet, "/api/rides/unexported", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var unexported []dto.UnexportedRideResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &unexported))
	suite.Require().Len(unexported, 1)
	suite.Equal(bram, unexported[0].ID)
	suite.Require().NotNil(unexported[0].ExpenseDescription)
	suite.Equal("Fuel", *unexported[0].ExpenseDescription)

	w = suite.do(http.MethodGet, "/api/exports?itemType=journal", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/exports", gin.H{"itemType": "journal", "itemIds": []int64{1}})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestListRidesPagination() {
	suite.createRide("Anne", "1", "2024-01-01")
	second := suite.createRide("Bram", "2", "2024-01-02")
	third := suite.createRide("Anne", "3", "2024-01-03")

	w := suite.do(http.MethodGet, "/api/rides?limit=2", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var page []dto.RideResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &page))
	suite.Require().Len(page, 2)
	suite.Equal(third, page[0].ID)
	suite.Equal(second, page[1].ID)
	token := w.Header().Get(handlers.HeaderNextToken)
	suite.Require().NotEmpty(token)

	w = suite.do(http.MethodGet, "/api/rides?limit=2&nextToken="+token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &page))
	suite.Len(page, 1)
	suite.Empty(w.Header().Get(handlers.HeaderNextToken))

	w = suite.do(http.MethodGet, "/api/rides?limit=501", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/rides?nextToken=%25%25", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
