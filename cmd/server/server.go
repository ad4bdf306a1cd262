package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/growthlens/server/growthlens/accounts"
	"github.com/growthlens/server/growthlens/profiles"
	"github.com/growthlens/server/growthlens/snapshots"
	"github.com/growthlens/server/growthlens/users"
	"github.com/growthlens/server/internal/config"
	"github.com/growthlens/server/internal/dashboard"
	"github.com/growthlens/server/internal/logger"
	"github.com/growthlens/server/internal/platform"
	"github.com/growthlens/server/internal/syncer"
	"github.com/growthlens/server/internal/synclock"
	"github.com/growthlens/server/internal/tokens"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	if err := runMigrations(cfg.SupabaseConnString); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.SupabaseConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// configure connection pool for supabase free tier pooler compatibility
	// free tier has ~10-15 pooler connections, so keep our pool small
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// CRITICAL: use simple protocol for supabase pooler (PgBouncer) compatibility
	// pgBouncer in transaction mode doesn't support prepared statements,
	// which causes connections to hang on subsequent queries
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	userRepo := users.NewRepository(db)
	profileRepo := profiles.NewRepository(db)
	accountRepo := accounts.NewRepository(db)
	snapshotRepo := snapshots.NewRepository(db)

	youtube := platform.NewYouTubeClient(cfg.YouTubeAPIKey)
	tiktok := platform.NewTikTokClient(cfg.TikTokClientKey, cfg.TikTokClientSecret, cfg.TikTokRedirectURI)
	tokenManager := tokens.NewManager(accountRepo, tiktok)

	// the redis lease keeps concurrent requests from refreshing the same
	// account twice; without redis the storage constraints still dedup
	// snapshots, so run degraded rather than fail startup
	var lock syncer.Lock

	locker, err := synclock.NewLocker(cfg.RedisURL)
	if err != nil {
		logger.ErrorErr(err, "failed to connect to redis, refresh locking disabled")
	} else {
		lock = locker
	}

	syncService := syncer.New(accountRepo, snapshotRepo, profileRepo, youtube, tiktok, tokenManager, lock)
	aggregator := dashboard.New(accountRepo, snapshotRepo, syncService)

	router := gin.Default()

	server := &Server{
		db:           db,
		config:       cfg,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		accountRepo:  accountRepo,
		snapshotRepo: snapshotRepo,
		tiktok:       tiktok,
		syncer:       syncService,
		aggregator:   aggregator,
		router:       router,
	}

	RegisterRoutes(router, server)

	return server, nil
}
