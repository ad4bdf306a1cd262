package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/growthlens/server/growthlens/accounts"
	"github.com/growthlens/server/growthlens/snapshots"
	"github.com/growthlens/server/internal/platform"
	"github.com/growthlens/server/internal/quota"
)

// metrics older than this are considered stale and re-fetched lazily
// on the next read
const StaleWindow = 10 * time.Minute

var (
	// connect attempted for an external account this user already linked
	ErrDuplicateAccount = errors.New("account already connected")
)

// connect attempted past the plan's connected-account cap
type QuotaExceededError struct {
	Plan        quota.Plan
	MaxAccounts int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("plan %s allows at most %d connected account(s)", e.Plan, e.MaxAccounts)
}

// account persistence used by the syncer
type AccountStore interface {
	ListAll(ctx context.Context) ([]accounts.Account, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	FindByExternalID(ctx context.Context, userID, platform, externalID string) (*accounts.Account, error)
	Insert(ctx context.Context, params accounts.InsertParams) (*accounts.Account, error)
	UpdateMetrics(ctx context.Context, id, title, avatarURL string, metrics accounts.Metrics, syncedAt time.Time) (*accounts.Account, error)
	Delete(ctx context.Context, userID, id string) error
}

// snapshot persistence used by the syncer
type SnapshotStore interface {
	Insert(ctx context.Context, params snapshots.InsertParams) error
	ExistsSince(ctx context.Context, accountID string, since time.Time) (bool, error)
}

// plan lookup for quota checks
type PlanStore interface {
	GetPlan(ctx context.Context, userID string) (string, error)
}

// YouTube metrics API
type YouTubeAPI interface {
	ResolveChannelID(ctx context.Context, input string) (string, error)
	FetchChannel(ctx context.Context, channelID string) (*platform.ChannelStats, error)
}

// TikTok metrics and OAuth API
type TikTokAPI interface {
	ExchangeCode(ctx context.Context, code string) (*platform.TokenPair, error)
	FetchUserInfo(ctx context.Context, accessToken string) (*platform.TikTokUserInfo, error)
}

// token lifecycle for tiktok accounts
type TokenManager interface {
	EnsureValidToken(ctx context.Context, account *accounts.Account, forceRefresh bool) (string, error)
}

// per-account refresh lease
type Lock interface {
	Acquire(ctx context.Context, accountID string) (bool, error)
	Release(ctx context.Context, accountID string)
}

// Syncer decides when an account's metrics are stale, re-fetches them and
// appends deduplicated daily snapshots
type Syncer struct {
	accounts  AccountStore
	snapshots SnapshotStore
	plans     PlanStore
	youtube   YouTubeAPI
	tiktok    TikTokAPI
	tokens    TokenManager
	lock      Lock
	now       func() time.Time
}

// creates a syncer. lock may be nil, in which case overlapping refreshes
// are only guarded by the storage-layer constraints.
func New(
	accountStore AccountStore,
	snapshotStore SnapshotStore,
	planStore PlanStore,
	youtube YouTubeAPI,
	tiktok TikTokAPI,
	tokenManager TokenManager,
	lock Lock,
) *Syncer {
	return &Syncer{
		accounts:  accountStore,
		snapshots: snapshotStore,
		plans:     planStore,
		youtube:   youtube,
		tiktok:    tiktok,
		tokens:    tokenManager,
		lock:      lock,
		now:       time.Now,
	}
}
