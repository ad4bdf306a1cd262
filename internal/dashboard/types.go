package dashboard

import (
	"context"
	"time"

	"github.com/growthlens/server/growthlens/accounts"
	"github.com/growthlens/server/growthlens/snapshots"
)

// how many history points the chart shows per account
const seriesLimit = 30

// account persistence used by the aggregator
type AccountStore interface {
	ListByUser(ctx context.Context, userID string) ([]accounts.Account, error)
	FindByID(ctx context.Context, userID, id string) (*accounts.Account, error)
}

// snapshot history used by the aggregator
type SnapshotStore interface {
	ListByAccount(ctx context.Context, accountID string, limit int) ([]snapshots.Snapshot, error)
}

// the staleness-gated refresh entry point
type Refresher interface {
	RefreshIfStale(ctx context.Context, account *accounts.Account) (bool, error)
}

// one platform-neutral chart point. Audience is subscribers or followers,
// Engagement is total views or total likes depending on the platform.
type SeriesPoint struct {
	Date       string `json:"date"`
	Audience   int64  `json:"audience"`
	Engagement int64  `json:"engagement"`
	Content    int64  `json:"content"`
}

// one account entry on the dashboard. SyncError and ReconnectRequired are
// set when this account's refresh failed; the rest of the batch is unaffected.
type AccountEntry struct {
	ID                string        `json:"id"`
	Platform          string        `json:"platform"`
	ExternalID        string        `json:"external_id"`
	Title             string        `json:"title"`
	AvatarURL         string        `json:"avatar_url"`
	Audience          int64         `json:"audience"`
	Engagement        int64         `json:"engagement"`
	Content           int64         `json:"content"`
	LastSyncedAt      *time.Time    `json:"last_synced_at"`
	SyncError         string        `json:"sync_error,omitempty"`
	ReconnectRequired bool          `json:"reconnect_required,omitempty"`
	Series            []SeriesPoint `json:"series"`
}

// the combined dashboard payload
type Data struct {
	Accounts []AccountEntry `json:"accounts"`
}

// single-account view with the same series shape
type AccountDetail struct {
	Account AccountEntry `json:"account"`
}

// Aggregator assembles the dashboard: refreshes every account of a user
// with per-account failure isolation and shapes accounts plus snapshot
// history into a platform-neutral form
type Aggregator struct {
	accounts  AccountStore
	snapshots SnapshotStore
	refresher Refresher
}

func New(accountStore AccountStore, snapshotStore SnapshotStore, refresher Refresher) *Aggregator {
	return &Aggregator{
		accounts:  accountStore,
		snapshots: snapshotStore,
		refresher: refresher,
	}
}
