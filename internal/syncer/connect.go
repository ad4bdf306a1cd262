package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/growthlens/server/growthlens/accounts"
	"github.com/growthlens/server/growthlens/snapshots"
	"github.com/growthlens/server/internal/platform"
	"github.com/growthlens/server/internal/quota"
)

// connects a YouTube channel from whatever identifier the user pasted.
// The quota check runs before anything else so a capped plan never spends
// an API call; the duplicate check runs before the stats fetch.
func (s *Syncer) ConnectYouTube(ctx context.Context, userID, urlOrID string) (*accounts.Account, error) {
	if err := s.checkQuota(ctx, userID); err != nil {
		return nil, err
	}

	channelID, err := s.youtube.ResolveChannelID(ctx, urlOrID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve channel: %w", err)
	}

	existing, err := s.accounts.FindByExternalID(ctx, userID, accounts.PlatformYouTube, channelID)
	if err != nil {
		return nil, fmt.Errorf("duplicate check failed: %w", err)
	}

	if existing != nil {
		return nil, ErrDuplicateAccount
	}

	stats, err := s.youtube.FetchChannel(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel stats: %w", err)
	}

	now := s.now()

	account, err := s.accounts.Insert(ctx, accounts.InsertParams{
		UserID:     userID,
		Platform:   accounts.PlatformYouTube,
		ExternalID: stats.ID,
		Title:      stats.Title,
		AvatarURL:  stats.Thumbnail,
		Metrics: accounts.Metrics{
			FollowerCount:   stats.SubscriberCount,
			EngagementCount: stats.ViewCount,
			VideoCount:      stats.VideoCount,
		},
		LastSyncedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert account: %w", err)
	}

	if err := s.writeFirstSnapshot(ctx, account, now); err != nil {
		return account, err
	}

	return account, nil
}

// connects a TikTok account from an OAuth authorization code. The code
// exchange has to happen before the duplicate check because the account's
// open id is only known after it.
func (s *Syncer) ConnectTikTok(ctx context.Context, userID, code string) (*accounts.Account, error) {
	if err := s.checkQuota(ctx, userID); err != nil {
		return nil, err
	}

	pair, err := s.tiktok.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	info, err := s.tiktok.FetchUserInfo(ctx, pair.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}

	existing, err := s.accounts.FindByExternalID(ctx, userID, accounts.PlatformTikTok, info.OpenID)
	if err != nil {
		return nil, fmt.Errorf("duplicate check failed: %w", err)
	}

	if existing != nil {
		return nil, ErrDuplicateAccount
	}

	now := s.now()
	expiresAt := now.Add(time.Duration(pair.ExpiresIn) * time.Second)

	account, err := s.accounts.Insert(ctx, accounts.InsertParams{
		UserID:     userID,
		Platform:   accounts.PlatformTikTok,
		ExternalID: info.OpenID,
		Title:      info.DisplayName,
		AvatarURL:  info.AvatarURL,
		Metrics: accounts.Metrics{
			FollowerCount:   info.FollowerCount,
			EngagementCount: info.LikeCount,
			VideoCount:      info.VideoCount,
		},
		LastSyncedAt:   now,
		AccessToken:    &pair.AccessToken,
		RefreshToken:   &pair.RefreshToken,
		TokenExpiresAt: &expiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert account: %w", err)
	}

	if err := s.writeFirstSnapshot(ctx, account, now); err != nil {
		return account, err
	}

	return account, nil
}

// removes a connected account. snapshot history is retained so a later
// reconnect of the same external account can resume it.
func (s *Syncer) RemoveAccount(ctx context.Context, userID, accountID string) error {
	return s.accounts.Delete(ctx, userID, accountID)
}

// rejects the connect before any external call when the plan cap is reached
func (s *Syncer) checkQuota(ctx context.Context, userID string) error {
	planValue, err := s.plans.GetPlan(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load plan: %w", err)
	}

	plan := quota.ParsePlan(planValue)

	count, err := s.accounts.CountByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to count accounts: %w", err)
	}

	if !quota.CanAddAccount(plan, count) {
		return &QuotaExceededError{Plan: plan, MaxAccounts: quota.MaxAccounts(plan)}
	}

	return nil
}

// writes the account's first history point. account creation and the first
// snapshot are separate writes; a connect only counts as fully successful
// once both landed.
func (s *Syncer) writeFirstSnapshot(ctx context.Context, account *accounts.Account, now time.Time) error {
	err := s.snapshots.Insert(ctx, snapshots.InsertParams{
		AccountID:       account.ID,
		RecordedAt:      now,
		FollowerCount:   account.FollowerCount,
		EngagementCount: account.EngagementCount,
		VideoCount:      account.VideoCount,
	})
	if err != nil {
		return fmt.Errorf("failed to write first snapshot for account %s: %w", account.ID, err)
	}

	return nil
}

// reports whether a refresh error means the user must reconnect the account
func IsReconnectRequired(err error) bool {
	return platform.IsInvalidGrant(err)
}
