package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/growthlens/server/growthlens/profiles"
	"github.com/growthlens/server/growthlens/users"
	"github.com/growthlens/server/internal/auth"
)

func RegisterRoutes(router *gin.RouterGroup, userRepo *users.Repository, profileRepo *profiles.Repository) {
	authGroup := router.Group("/auth")
	{
		authGroup.GET("/:provider", BeginAuthHandler())
		authGroup.GET("/:provider/callback", CallbackHandler(userRepo, profileRepo))
		authGroup.POST("/logout", LogoutHandler())
		authGroup.GET("/me", auth.AuthMiddleware(), GetCurrentUserHandler(userRepo))
	}
}
