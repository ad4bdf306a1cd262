package billing

import (
	"crypto/hmac"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/growthlens/server/internal/errors"
	"github.com/growthlens/server/internal/logger"
	"github.com/growthlens/server/internal/quota"
)

// WebhookHandler godoc
// @Summary Billing webhook
// @Description Applies plan changes pushed by the billing provider. Unlike the self-service plan endpoint, billing events always persist - the provider has already charged or cancelled.
// @Tags billing
// @Accept json
// @Produce json
// @Param request body WebhookEvent true "Billing event"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /api/v1/billing/webhook [post]
func WebhookHandler(profileRepo PlanStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := os.Getenv("BILLING_WEBHOOK_SECRET")
		if secret == "" || !hmac.Equal([]byte(c.GetHeader("X-Webhook-Secret")), []byte(secret)) {
			errors.Forbidden(c, "invalid webhook signature")
			return
		}

		var event WebhookEvent
		if err := c.ShouldBindJSON(&event); err != nil {
			errors.BadRequest(c, "invalid event payload", err)
			return
		}

		var plan quota.Plan

		switch event.Type {
		case eventSubscriptionUpdated:
			plan = quota.ParsePlan(event.Plan)
		case eventSubscriptionDeleted:
			plan = quota.PlanFree
		default:
			// acknowledge unknown event types so the provider stops retrying
			c.JSON(http.StatusOK, MessageResponse{Message: "ignored"})
			return
		}

		if _, err := profileRepo.UpdatePlan(c.Request.Context(), event.UserID, string(plan)); err != nil {
			errors.InternalError(c, "failed to apply plan change", err)
			return
		}

		logger.Info("billing plan change applied",
			"user_id", event.UserID,
			"event", event.Type,
			"plan", plan,
		)

		c.JSON(http.StatusOK, MessageResponse{Message: "ok"})
	}
}
