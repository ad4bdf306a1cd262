package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/growthlens/server/internal/auth"
	"github.com/growthlens/server/internal/syncer"
)

func RegisterRoutes(router *gin.RouterGroup, svc *syncer.Syncer) {
	admin := router.Group("/admin")
	admin.Use(auth.CronAuthMiddleware())

	admin.POST("/refresh", RefreshAllHandler(svc))
}
