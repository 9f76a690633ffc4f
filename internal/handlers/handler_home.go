package handlers

import (
	"net/http"

	"github.com/SscSPs/car_expense_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// getAPITest godoc
// @Summary Show the status of the API.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]string
// @Router /test [get]
func getAPITest(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "API is working!"})
}

// listParticipants godoc
// @Summary List participants
// @Tags root
// @Produce json
// @Success 200 {array} string
// @Router /participants [get]
func listParticipants(participants domain.ParticipantSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		members := participants.Members()
		names := make([]string, len(members))
		for i, p := range members {
			names[i] = string(p)
		}
		c.JSON(http.StatusOK, names)
	}
}

// registerHomeRoutes registers the liveness and participant routes
func registerHomeRoutes(group *gin.RouterGroup, participants domain.ParticipantSet) {
	group.GET("/test", getAPITest)
	group.GET("/participants", listParticipants(participants))
}
