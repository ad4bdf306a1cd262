package billing

import (
	"context"

	"github.com/growthlens/server/growthlens/profiles"
)

// the slice of the profile repository the webhook writes through
type PlanStore interface {
	UpdatePlan(ctx context.Context, userID, plan string) (*profiles.Profile, error)
}

// event payload posted by the billing provider integration
type WebhookEvent struct {
	Type   string `json:"type" binding:"required"`
	UserID string `json:"user_id" binding:"required"`
	Plan   string `json:"plan"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

const (
	eventSubscriptionUpdated = "subscription.updated"
	eventSubscriptionDeleted = "subscription.deleted"
)
