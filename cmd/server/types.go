package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/growthlens/server/growthlens/accounts"
	"github.com/growthlens/server/growthlens/profiles"
	"github.com/growthlens/server/growthlens/snapshots"
	"github.com/growthlens/server/growthlens/users"
	"github.com/growthlens/server/internal/config"
	"github.com/growthlens/server/internal/dashboard"
	"github.com/growthlens/server/internal/platform"
	"github.com/growthlens/server/internal/syncer"
)

// holds all dependencies and state for the API server
type Server struct {
	db           *pgxpool.Pool
	config       *config.Config
	userRepo     *users.Repository
	profileRepo  *profiles.Repository
	accountRepo  *accounts.Repository
	snapshotRepo *snapshots.Repository
	tiktok       *platform.TikTokClient
	syncer       *syncer.Syncer
	aggregator   *dashboard.Aggregator
	router       *gin.Engine
}
