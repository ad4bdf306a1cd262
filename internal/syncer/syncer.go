package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/growthlens/server/growthlens/accounts"
	"github.com/growthlens/server/growthlens/snapshots"
	"github.com/growthlens/server/internal/logger"
	"github.com/growthlens/server/internal/platform"
)

// re-fetches the account's metrics if they are older than StaleWindow and
// reports whether a refresh happened. A never-synced account is always stale.
// On success the passed account is updated in place and a daily snapshot is
// written unless one already exists for the current day.
//
// A failed fetch never touches the account row, so the stored metrics stay
// consistent and the next staleness check simply retries.
func (s *Syncer) RefreshIfStale(ctx context.Context, account *accounts.Account) (bool, error) {
	now := s.now()

	if account.LastSyncedAt != nil && now.Sub(*account.LastSyncedAt) <= StaleWindow {
		return false, nil
	}

	if s.lock != nil {
		acquired, err := s.lock.Acquire(ctx, account.ID)

		switch {
		case err != nil:
			// degrade to unguarded refresh, snapshot dedup still holds via
			// the storage constraint
			logger.FromContext(ctx).Warn("sync lock unavailable", "account_id", account.ID, "error", err)
		case !acquired:
			// another request is already refreshing this account
			return false, nil
		default:
			defer s.lock.Release(ctx, account.ID)
		}
	}

	var (
		title   string
		avatar  string
		metrics accounts.Metrics
	)

	switch account.Platform {
	case accounts.PlatformYouTube:
		stats, err := s.youtube.FetchChannel(ctx, account.ExternalID)
		if err != nil {
			return false, fmt.Errorf("youtube fetch failed for account %s: %w", account.ID, err)
		}

		title = stats.Title
		avatar = stats.Thumbnail
		metrics = accounts.Metrics{
			FollowerCount:   stats.SubscriberCount,
			EngagementCount: stats.ViewCount,
			VideoCount:      stats.VideoCount,
		}

	case accounts.PlatformTikTok:
		info, err := s.fetchTikTok(ctx, account)
		if err != nil {
			return false, err
		}

		title = info.DisplayName
		avatar = info.AvatarURL
		metrics = accounts.Metrics{
			FollowerCount:   info.FollowerCount,
			EngagementCount: info.LikeCount,
			VideoCount:      info.VideoCount,
		}

	default:
		return false, fmt.Errorf("unknown platform %q for account %s", account.Platform, account.ID)
	}

	updated, err := s.accounts.UpdateMetrics(ctx, account.ID, title, avatar, metrics, now)
	if err != nil {
		return false, fmt.Errorf("failed to persist metrics for account %s: %w", account.ID, err)
	}

	*account = *updated

	if err := s.writeDailySnapshot(ctx, account.ID, metrics, now); err != nil {
		// the account row is already fresh; only the history point is missing
		return true, fmt.Errorf("failed to write snapshot for account %s: %w", account.ID, err)
	}

	return true, nil
}

// fetches tiktok metrics with the retry-once token policy: ensure a valid
// token, fetch, and on failure force exactly one refresh and retry exactly
// once. A second failure is terminal for this refresh cycle.
func (s *Syncer) fetchTikTok(ctx context.Context, account *accounts.Account) (*platform.TikTokUserInfo, error) {
	token, err := s.tokens.EnsureValidToken(ctx, account, false)
	if err != nil {
		return nil, fmt.Errorf("token check failed for account %s: %w", account.ID, err)
	}

	info, err := s.tiktok.FetchUserInfo(ctx, token)
	if err == nil {
		return info, nil
	}

	logger.FromContext(ctx).Debug("tiktok fetch failed, forcing token refresh", "account_id", account.ID, "error", err)

	token, refreshErr := s.tokens.EnsureValidToken(ctx, account, true)
	if refreshErr != nil {
		return nil, fmt.Errorf("forced token refresh failed for account %s: %w", account.ID, refreshErr)
	}

	info, err = s.tiktok.FetchUserInfo(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("tiktok fetch failed after token refresh for account %s: %w", account.ID, err)
	}

	return info, nil
}

// inserts a snapshot unless one already exists for the current calendar day.
// the existence check saves a write; the unique day constraint in the
// snapshots table is what actually guarantees one-per-day under races.
func (s *Syncer) writeDailySnapshot(ctx context.Context, accountID string, metrics accounts.Metrics, now time.Time) error {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	exists, err := s.snapshots.ExistsSince(ctx, accountID, dayStart)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	return s.snapshots.Insert(ctx, snapshots.InsertParams{
		AccountID:       accountID,
		RecordedAt:      now,
		FollowerCount:   metrics.FollowerCount,
		EngagementCount: metrics.EngagementCount,
		VideoCount:      metrics.VideoCount,
	})
}

// runs the staleness check over every connected account in the system.
// used by the periodic external trigger. failures are isolated per account.
func (s *Syncer) RefreshAllStale(ctx context.Context) (refreshed, failed int, err error) {
	all, err := s.accounts.ListAll(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list accounts: %w", err)
	}

	for i := range all {
		account := &all[i]

		ok, refreshErr := s.RefreshIfStale(ctx, account)

		// a refresh can succeed while only the snapshot write fails, which
		// counts on both sides
		if ok {
			refreshed++
		}

		if refreshErr != nil {
			failed++

			logger.FromContext(ctx).Error("account refresh failed",
				"account_id", account.ID,
				"platform", account.Platform,
				"error", refreshErr,
			)
		}
	}

	return refreshed, failed, nil
}
