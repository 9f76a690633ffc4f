package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/car_expense_app/internal/core/ports/services"
	"github.com/SscSPs/car_expense_app/internal/dto"
	"github.com/SscSPs/car_expense_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// balanceHandler serves the balance views.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

// registerBalanceRoutes registers the summary and balance routes.
func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := &balanceHandler{balanceService: balanceService}

	rg.GET("/summary", h.getSummary)
	rg.GET("/summary/balances", h.getExpenseBalances)
	rg.GET("/expense-balances", h.getExpenseBalances)
	rg.GET("/total-balances", h.getTotalBalances)
}

// getSummary godoc
// @Summary Balance summary
// @Description Every balance joined with its expense, money formatted with two decimals
// @Tags balances
// @Produce  json
// @Success 200 {array} dto.SummaryRowResponse
// @Failure 500 {object} map[string]string "Failed to fetch summary"
// @Router /summary [get]
func (h *balanceHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	details, err := h.balanceService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to fetch summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToSummaryRowResponses(details))
}

// getTotalBalances godoc
// @Summary Total balances
// @Description Directed debts summed per pair, without netting
// @Tags balances
// @Produce  json
// @Success 200 {array} dto.TotalBalanceResponse
// @Failure 500 {object} map[string]string "Failed to fetch total balances"
// @Router /total-balances [get]
func (h *balanceHandler) getTotalBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rows, err := h.balanceService.TotalBalances(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to fetch total balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToTotalBalanceResponses(rows))
}

// getExpenseBalances godoc
// @Summary Pending balances
// @Description Balances of unexported expenses and their netted settlement
// @Tags balances
// @Produce  json
// @Success 200 {object} dto.ExpenseBalancesResponse
// @Failure 500 {object} map[string]string "Failed to fetch expense balances"
// @Router /expense-balances [get]
func (h *balanceHandler) getExpenseBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	balances, err := h.balanceService.ExpenseBalances(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to fetch expense balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseBalancesResponse(balances))
}
