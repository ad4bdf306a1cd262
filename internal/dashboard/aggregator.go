package dashboard

import (
	"context"
	"fmt"

	"github.com/growthlens/server/growthlens/accounts"
	"github.com/growthlens/server/growthlens/snapshots"
	"github.com/growthlens/server/internal/logger"
	"github.com/growthlens/server/internal/syncer"
)

// builds the full dashboard for one user. Every connected account goes
// through the staleness check first; a failing account is returned with its
// error marker instead of aborting the batch. Accounts are re-read after the
// refresh pass so the payload reflects any updates that landed.
func (a *Aggregator) GetDashboardData(ctx context.Context, userID string) (*Data, error) {
	list, err := a.accounts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	syncErrors := make(map[string]error, len(list))

	for i := range list {
		account := &list[i]

		if _, err := a.refresher.RefreshIfStale(ctx, account); err != nil {
			syncErrors[account.ID] = err

			logger.Warn("dashboard refresh failed",
				"account_id", account.ID,
				"platform", account.Platform,
				"reconnect_required", syncer.IsReconnectRequired(err),
				"error", err,
			)
		}
	}

	// fresh read: a concurrent request may have refreshed an account we
	// skipped or failed on
	list, err = a.accounts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload accounts: %w", err)
	}

	entries := make([]AccountEntry, 0, len(list))

	for i := range list {
		account := &list[i]

		entry := a.buildEntry(ctx, account, syncErrors[account.ID])
		entries = append(entries, entry)
	}

	return &Data{Accounts: entries}, nil
}

// returns one account with its full series, refreshed if stale. A refresh
// failure here is reported on the entry the same way the batch does it.
func (a *Aggregator) GetAccountDetail(ctx context.Context, userID, accountID string) (*AccountDetail, error) {
	account, err := a.accounts.FindByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	var syncErr error
	if _, err := a.refresher.RefreshIfStale(ctx, account); err != nil {
		syncErr = err

		logger.Warn("account detail refresh failed",
			"account_id", account.ID,
			"error", err,
		)
	}

	entry := a.buildEntry(ctx, account, syncErr)

	return &AccountDetail{Account: entry}, nil
}

func (a *Aggregator) buildEntry(ctx context.Context, account *accounts.Account, syncErr error) AccountEntry {
	entry := AccountEntry{
		ID:           account.ID,
		Platform:     account.Platform,
		ExternalID:   account.ExternalID,
		Title:        account.Title,
		AvatarURL:    account.AvatarURL,
		Audience:     account.FollowerCount,
		Engagement:   account.EngagementCount,
		Content:      account.VideoCount,
		LastSyncedAt: account.LastSyncedAt,
		Series:       []SeriesPoint{},
	}

	if syncErr != nil {
		entry.SyncError = "sync failed"
		entry.ReconnectRequired = syncer.IsReconnectRequired(syncErr)

		if entry.ReconnectRequired {
			entry.SyncError = "connection expired"
		}
	}

	history, err := a.snapshots.ListByAccount(ctx, account.ID, seriesLimit)
	if err != nil {
		// the headline numbers are still usable without the chart
		logger.Warn("failed to load snapshot history", "account_id", account.ID, "error", err)
		return entry
	}

	entry.Series = buildSeries(history)

	return entry
}

func buildSeries(history []snapshots.Snapshot) []SeriesPoint {
	series := make([]SeriesPoint, 0, len(history))

	for _, s := range history {
		series = append(series, SeriesPoint{
			Date:       s.RecordedAt.Format("Jan 2"),
			Audience:   s.FollowerCount,
			Engagement: s.EngagementCount,
			Content:    s.VideoCount,
		})
	}

	return series
}
