package accounts

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles connected-account database operations
type Repository struct {
	db *pgxpool.Pool
}

// supported social platforms
const (
	PlatformYouTube = "youtube"
	PlatformTikTok  = "tiktok"
)

// represents one external social account linked to a user.
// FollowerCount holds subscribers for youtube and followers for tiktok;
// EngagementCount holds total views for youtube and total likes for tiktok.
type Account struct {
	ID              string     `json:"id"`
	UserID          string     `json:"-"`
	Platform        string     `json:"platform"`
	ExternalID      string     `json:"external_id"`
	Title           string     `json:"title"`
	AvatarURL       string     `json:"avatar_url"`
	FollowerCount   int64      `json:"follower_count"`
	EngagementCount int64      `json:"engagement_count"`
	VideoCount      int64      `json:"video_count"`
	LastSyncedAt    *time.Time `json:"last_synced_at"`
	AccessToken     *string    `json:"-"`
	RefreshToken    *string    `json:"-"`
	TokenExpiresAt  *time.Time `json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// numeric counters written on every successful refresh
type Metrics struct {
	FollowerCount   int64
	EngagementCount int64
	VideoCount      int64
}

// contains data for inserting a new connected account
type InsertParams struct {
	UserID         string
	Platform       string
	ExternalID     string
	Title          string
	AvatarURL      string
	Metrics        Metrics
	LastSyncedAt   time.Time
	AccessToken    *string
	RefreshToken   *string
	TokenExpiresAt *time.Time
}
