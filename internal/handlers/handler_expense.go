package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/car_expense_app/internal/core/ports/services"
	"github.com/SscSPs/car_expense_app/internal/dto"
	"github.com/SscSPs/car_expense_app/internal/middleware"
	"github.com/SscSPs/car_expense_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// expenseHandler handles HTTP requests related to expenses.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
	posthog        *utils.PosthogClientWrapper
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade, posthog *utils.PosthogClientWrapper) *expenseHandler {
	return &expenseHandler{expenseService: es, posthog: posthog}
}

// registerExpenseRoutes registers routes related to expenses.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade, posthog *utils.PosthogClientWrapper) {
	h := newExpenseHandler(expenseService, posthog)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
	}
}

// createExpense godoc
// @Summary Record a shared expense
// @Description Allocates the expense over the selected rides by distance and stores the resulting balances
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.CreateExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to create expense"
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create expense", slog.String("payer", req.Payer), slog.Int("ride_count", len(req.RideIDs)))

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to create expense")
		return
	}

	middleware.PosthogEvent(c, h.posthog, string(expense.Payer), "expense_created", map[string]any{
		"expense_id": expense.ExpenseID,
		"amount":     expense.Amount.String(),
		"ride_count": len(req.RideIDs),
	})
	c.JSON(http.StatusCreated, dto.CreateExpenseResponse{Message: "Expense added successfully", ID: expense.ExpenseID})
}

// listExpenses godoc
// @Summary List expenses
// @Description Lists expenses newest date first
// @Tags expenses
// @Produce  json
// @Success 200 {array} dto.ExpenseResponse
// @Failure 500 {object} map[string]string "Failed to list expenses"
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenses, err := h.expenseService.ListExpenses(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponses(expenses))
}
