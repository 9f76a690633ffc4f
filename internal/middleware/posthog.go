package middleware

import (
	"github.com/SscSPs/car_expense_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// PosthogEvent sends a custom analytics event attributed to a participant.
// It is a no-op when analytics are not configured.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, distinctID string, eventName string, properties map[string]any) {
	if posthogClient == nil || !posthogClient.IsInitialized() || distinctID == "" {
		return
	}

	if properties == nil {
		properties = make(map[string]any)
	}
	properties["method"] = c.Request.Method
	properties["path"] = c.Request.URL.Path
	if requestID := c.Writer.Header().Get("X-Request-ID"); requestID != "" {
		properties["request_id"] = requestID
	}

	posthogClient.Enqueue(distinctID, eventName, properties)
}
