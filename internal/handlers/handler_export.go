package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/car_expense_app/internal/core/ports/services"
	"github.com/SscSPs/car_expense_app/internal/dto"
	"github.com/SscSPs/car_expense_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exportHandler records which items were synchronized to the external bookkeeping tool.
type exportHandler struct {
	exportService portssvc.ExportSvcFacade
}

// registerExportRoutes registers routes related to exported items.
func registerExportRoutes(rg *gin.RouterGroup, exportService portssvc.ExportSvcFacade) {
	h := &exportHandler{exportService: exportService}

	exports := rg.Group("/exports")
	{
		exports.POST("", h.markExported)
		exports.GET("", h.listExported)
	}
}

// markExported godoc
// @Summary Mark items as exported
// @Description Hides rides, expenses or balances from the pending views. Items already marked are ignored.
// @Tags exports
// @Accept  json
// @Produce  json
// @Param   items body dto.MarkExportedRequest true "Items to mark"
// @Success 200 {object} dto.MarkExportedResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to mark items as exported"
// @Router /exports [post]
func (h *exportHandler) markExported(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.MarkExportedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for MarkExported", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	marked, err := h.exportService.MarkExported(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to mark items as exported")
		return
	}
	c.JSON(http.StatusOK, dto.MarkExportedResponse{Marked: marked})
}

// listExported godoc
// @Summary List exported items
// @Tags exports
// @Produce  json
// @Param   itemType query string false "ride, expense or balance"
// @Success 200 {array} dto.ExportedItemResponse
// @Failure 400 {object} map[string]string "Unknown item type"
// @Failure 500 {object} map[string]string "Failed to list exported items"
// @Router /exports [get]
func (h *exportHandler) listExported(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	items, err := h.exportService.ListExported(c.Request.Context(), c.Query("itemType"))
	if err != nil {
		respondError(c, logger, err, "Failed to list exported items")
		return
	}
	c.JSON(http.StatusOK, dto.ToExportedItemResponses(items))
}
