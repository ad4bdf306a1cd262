package dashboard

import (
	"github.com/gin-gonic/gin"

	"github.com/growthlens/server/internal/auth"
	"github.com/growthlens/server/internal/dashboard"
)

func RegisterRoutes(router *gin.RouterGroup, agg *dashboard.Aggregator) {
	router.GET("/dashboard", auth.AuthMiddleware(), GetDashboardHandler(agg))
}
