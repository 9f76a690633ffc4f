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

// HeaderNextToken carries the cursor of the next ride page.
const HeaderNextToken = "X-Next-Token"

// rideHandler handles HTTP requests related to rides.
type rideHandler struct {
	rideService portssvc.RideSvcFacade
	posthog     *utils.PosthogClientWrapper
}

func newRideHandler(rs portssvc.RideSvcFacade, posthog *utils.PosthogClientWrapper) *rideHandler {
	return &rideHandler{rideService: rs, posthog: posthog}
}

// registerRideRoutes registers routes related to rides.
func registerRideRoutes(rg *gin.RouterGroup, rideService portssvc.RideSvcFacade, posthog *utils.PosthogClientWrapper) {
	h := newRideHandler(rideService, posthog)

	rides := rg.Group("/rides")
	{
		rides.POST("", h.createRide)
		rides.GET("", h.listRides)
		rides.GET("/linked", h.listLinkedRides)
		rides.GET("/unexported", h.listUnexportedRides)
	}
}

// createRide godoc
// @Summary Record a ride
// @Description Records one trip by one driver
// @Tags rides
// @Accept  json
// @Produce  json
// @Param   ride body dto.CreateRideRequest true "Ride details"
// @Success 201 {object} dto.CreateRideResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to create ride"
// @Router /rides [post]
func (h *rideHandler) createRide(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRide", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ride, err := h.rideService.CreateRide(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to create ride")
		return
	}

	middleware.PosthogEvent(c, h.posthog, string(ride.Driver), "ride_created", map[string]any{
		"ride_id":  ride.RideID,
		"distance": ride.Distance.String(),
	})
	c.JSON(http.StatusCreated, dto.CreateRideResponse{ID: ride.RideID})
}

// listRides godoc
// @Summary List rides
// @Description Lists rides newest date first. With limit, one page is returned and the next cursor is sent in the X-Next-Token header.
// @Tags rides
// @Produce  json
// @Param   limit query int false "Page size (1-500)"
// @Param   nextToken query string false "Cursor from X-Next-Token"
// @Success 200 {array} dto.RideResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list rides"
// @Router /rides [get]
func (h *rideHandler) listRides(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListRidesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListRides", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	result, err := h.rideService.ListRides(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list rides")
		return
	}

	if result.NextToken != nil {
		c.Header(HeaderNextToken, *result.NextToken)
	}
	c.JSON(http.StatusOK, dto.ToRideResponses(result.Rides))
}

// listLinkedRides godoc
// @Summary List linked rides
// @Description Lists rides already allocated to an expense
// @Tags rides
// @Produce  json
// @Success 200 {array} dto.RideResponse
// @Failure 500 {object} map[string]string "Failed to list linked rides"
// @Router /rides/linked [get]
func (h *rideHandler) listLinkedRides(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rides, err := h.rideService.ListLinkedRides(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list linked rides")
		return
	}
	c.JSON(http.StatusOK, dto.ToRideResponses(rides))
}

// listUnexportedRides godoc
// @Summary List unexported rides
// @Description Lists rides not yet exported, annotated with their expense when linked
// @Tags rides
// @Produce  json
// @Success 200 {array} dto.UnexportedRideResponse
// @Failure 500 {object} map[string]string "Failed to list unexported rides"
// @Router /rides/unexported [get]
func (h *rideHandler) listUnexportedRides(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rides, err := h.rideService.ListUnexportedRides(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list unexported rides")
		return
	}
	c.JSON(http.StatusOK, dto.ToUnexportedRideResponses(rides))
}
