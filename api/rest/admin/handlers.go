package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/growthlens/server/internal/errors"
	"github.com/growthlens/server/internal/logger"
	"github.com/growthlens/server/internal/syncer"
)

// RefreshAllHandler godoc
// @Summary Refresh all stale accounts
// @Description Runs the staleness check over every connected account. Called by the periodic scheduler.
// @Tags admin
// @Produce json
// @Success 200 {object} RefreshAllResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/admin/refresh [post]
// @Security CronSecretAuth
func RefreshAllHandler(svc *syncer.Syncer) gin.HandlerFunc {
	return func(c *gin.Context) {
		refreshed, failed, err := svc.RefreshAllStale(c.Request.Context())
		if err != nil {
			errors.InternalError(c, "refresh pass failed", err)
			return
		}

		logger.Info("scheduled refresh pass finished", "refreshed", refreshed, "failed", failed)

		c.JSON(http.StatusOK, RefreshAllResponse{
			Refreshed: refreshed,
			Failed:    failed,
		})
	}
}
