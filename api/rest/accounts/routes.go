package accounts

import (
	"github.com/gin-gonic/gin"

	"github.com/growthlens/server/growthlens/accounts"
	"github.com/growthlens/server/internal/auth"
	"github.com/growthlens/server/internal/dashboard"
	"github.com/growthlens/server/internal/platform"
	"github.com/growthlens/server/internal/syncer"
)

func RegisterRoutes(
	router *gin.RouterGroup,
	accountRepo *accounts.Repository,
	svc *syncer.Syncer,
	agg *dashboard.Aggregator,
	tiktok *platform.TikTokClient,
) {
	// the TikTok redirect arrives without a bearer header; the state token
	// authenticates it instead
	router.GET("/accounts/tiktok/callback", TikTokCallbackHandler(svc))

	accountsGroup := router.Group("/accounts")
	accountsGroup.Use(auth.AuthMiddleware())
	{
		accountsGroup.GET("", ListAccountsHandler(accountRepo))
		accountsGroup.POST("/youtube", ConnectYouTubeHandler(svc))
		accountsGroup.GET("/tiktok/connect", TikTokConnectURLHandler(tiktok))
		accountsGroup.GET("/:id", GetAccountHandler(agg))
		accountsGroup.DELETE("/:id", DeleteAccountHandler(svc))
	}
}
