package plans

import (
	"github.com/gin-gonic/gin"

	"github.com/growthlens/server/growthlens/accounts"
	"github.com/growthlens/server/growthlens/profiles"
	"github.com/growthlens/server/internal/auth"
)

func RegisterRoutes(router *gin.RouterGroup, profileRepo *profiles.Repository, accountRepo *accounts.Repository) {
	router.GET("/plans", ListPlansHandler())

	me := router.Group("/plans/me")
	me.Use(auth.AuthMiddleware())
	{
		me.GET("", GetCurrentPlanHandler(profileRepo, accountRepo))
		me.PUT("", UpdatePlanHandler(profileRepo, accountRepo))
	}
}
