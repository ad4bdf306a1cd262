package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/growthlens/server/api/rest/accounts"
	"github.com/growthlens/server/api/rest/admin"
	"github.com/growthlens/server/api/rest/auth"
	"github.com/growthlens/server/api/rest/billing"
	"github.com/growthlens/server/api/rest/dashboard"
	"github.com/growthlens/server/api/rest/health"
	"github.com/growthlens/server/api/rest/plans"
	"github.com/growthlens/server/internal/logger"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware(server))
	router.GET("/health", health.Handler)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		auth.RegisterRoutes(v1, server.userRepo, server.profileRepo)
		accounts.RegisterRoutes(v1, server.accountRepo, server.syncer, server.aggregator, server.tiktok)
		dashboard.RegisterRoutes(v1, server.aggregator)
		plans.RegisterRoutes(v1, server.profileRepo, server.accountRepo)
		billing.RegisterRoutes(v1, server.profileRepo)
		admin.RegisterRoutes(v1, server.syncer)
	}
}

// tags every request with an id for log correlation, keeping a caller-supplied
// one when present. downstream code picks the tagged logger back up with
// logger.FromContext.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Set("request_id", requestID)

		reqLogger := logger.With("request_id", requestID)
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLogger))

		c.Next()
	}
}

func CORSMiddleware(server *Server) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:     []string{server.config.BaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if server.config.Environment != "production" {
		corsConfig.AllowOrigins = append(corsConfig.AllowOrigins, "http://localhost:3000")
	}

	return cors.New(corsConfig)
}
