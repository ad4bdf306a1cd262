package billing

import (
	"github.com/gin-gonic/gin"

	"github.com/growthlens/server/growthlens/profiles"
)

func RegisterRoutes(router *gin.RouterGroup, profileRepo *profiles.Repository) {
	router.POST("/billing/webhook", WebhookHandler(profileRepo))
}
