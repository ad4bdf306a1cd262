package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/growthlens/server/internal/auth"
	"github.com/growthlens/server/internal/dashboard"
	"github.com/growthlens/server/internal/errors"
)

// GetDashboardHandler godoc
// @Summary Get the dashboard
// @Description Refreshes all of the user's accounts if stale and returns them with their snapshot series
// @Tags dashboard
// @Produce json
// @Success 200 {object} dashboard.Data
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/dashboard [get]
// @Security BearerAuth
func GetDashboardHandler(agg *dashboard.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		data, err := agg.GetDashboardData(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to load dashboard", err)
			return
		}

		c.JSON(http.StatusOK, data)
	}
}
