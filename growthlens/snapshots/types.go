package snapshots

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles daily snapshot database operations
type Repository struct {
	db *pgxpool.Pool
}

// one point-in-time record of an account's metrics, immutable once written.
// at most one snapshot exists per account per calendar day.
type Snapshot struct {
	ID              int64     `json:"id"`
	AccountID       string    `json:"account_id"`
	RecordedAt      time.Time `json:"recorded_at"`
	FollowerCount   int64     `json:"follower_count"`
	EngagementCount int64     `json:"engagement_count"`
	VideoCount      int64     `json:"video_count"`
}

// contains data for inserting a snapshot
type InsertParams struct {
	AccountID       string
	RecordedAt      time.Time
	FollowerCount   int64
	EngagementCount int64
	VideoCount      int64
}
