package dashboard

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthlens/server/growthlens/accounts"
	"github.com/growthlens/server/growthlens/snapshots"
	"github.com/growthlens/server/internal/platform"
)

type mockAccountStore struct {
	byUser map[string][]accounts.Account
}

func (m *mockAccountStore) ListByUser(_ context.Context, userID string) ([]accounts.Account, error) {
	list := make([]accounts.Account, len(m.byUser[userID]))
	copy(list, m.byUser[userID])

	return list, nil
}

func (m *mockAccountStore) FindByID(_ context.Context, userID, id string) (*accounts.Account, error) {
	for _, a := range m.byUser[userID] {
		if a.ID == id {
			found := a
			return &found, nil
		}
	}

	return nil, accounts.ErrNotFound
}

type mockSnapshotStore struct {
	byAccount map[string][]snapshots.Snapshot
	err       error
}

func (m *mockSnapshotStore) ListByAccount(_ context.Context, accountID string, limit int) ([]snapshots.Snapshot, error) {
	if m.err != nil {
		return nil, m.err
	}

	history := m.byAccount[accountID]
	if len(history) > limit {
		history = history[len(history)-limit:]
	}

	return history, nil
}

type mockRefresher struct {
	calls   []string
	failing map[string]error
}

func (m *mockRefresher) RefreshIfStale(_ context.Context, account *accounts.Account) (bool, error) {
	m.calls = append(m.calls, account.ID)

	if err, ok := m.failing[account.ID]; ok {
		return false, err
	}

	// simulate a successful refresh bumping the counters
	account.FollowerCount++
	now := time.Now()
	account.LastSyncedAt = &now

	return true, nil
}

func testAccounts() []accounts.Account {
	return []accounts.Account{
		{ID: "a1", UserID: "u1", Platform: accounts.PlatformYouTube, ExternalID: "UC1", Title: "One", FollowerCount: 100, EngagementCount: 5000, VideoCount: 10},
		{ID: "a2", UserID: "u1", Platform: accounts.PlatformTikTok, ExternalID: "open-2", Title: "Two", FollowerCount: 200, EngagementCount: 9000, VideoCount: 40},
		{ID: "a3", UserID: "u1", Platform: accounts.PlatformYouTube, ExternalID: "UC3", Title: "Three", FollowerCount: 300, EngagementCount: 12000, VideoCount: 60},
	}
}

func TestGetDashboardDataRefreshesEveryAccount(t *testing.T) {
	store := &mockAccountStore{byUser: map[string][]accounts.Account{"u1": testAccounts()}}
	refresher := &mockRefresher{}
	agg := New(store, &mockSnapshotStore{}, refresher)

	data, err := agg.GetDashboardData(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, data.Accounts, 3)
	assert.Equal(t, []string{"a1", "a2", "a3"}, refresher.calls)

	for _, entry := range data.Accounts {
		assert.Empty(t, entry.SyncError)
		assert.False(t, entry.ReconnectRequired)
	}
}

func TestGetDashboardDataIsolatesFailingAccount(t *testing.T) {
	store := &mockAccountStore{byUser: map[string][]accounts.Account{"u1": testAccounts()}}
	refresher := &mockRefresher{failing: map[string]error{
		"a2": errors.New("tiktok fetch failed"),
	}}
	agg := New(store, &mockSnapshotStore{}, refresher)

	data, err := agg.GetDashboardData(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, data.Accounts, 3)
	assert.Len(t, refresher.calls, 3)

	assert.Empty(t, data.Accounts[0].SyncError)
	assert.Equal(t, "sync failed", data.Accounts[1].SyncError)
	assert.False(t, data.Accounts[1].ReconnectRequired)
	assert.Empty(t, data.Accounts[2].SyncError)
}

func TestGetDashboardDataFlagsReconnectRequired(t *testing.T) {
	store := &mockAccountStore{byUser: map[string][]accounts.Account{"u1": testAccounts()}}
	refresher := &mockRefresher{failing: map[string]error{
		"a2": fmt.Errorf("token refresh failed: %w", platform.ErrInvalidGrant),
	}}
	agg := New(store, &mockSnapshotStore{}, refresher)

	data, err := agg.GetDashboardData(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, "connection expired", data.Accounts[1].SyncError)
	assert.True(t, data.Accounts[1].ReconnectRequired)
}

func TestGetDashboardDataNormalizesSeries(t *testing.T) {
	store := &mockAccountStore{byUser: map[string][]accounts.Account{
		"u1": {{ID: "a1", UserID: "u1", Platform: accounts.PlatformTikTok, ExternalID: "open-1"}},
	}}
	snaps := &mockSnapshotStore{byAccount: map[string][]snapshots.Snapshot{
		"a1": {
			{AccountID: "a1", RecordedAt: time.Date(2025, 5, 30, 8, 0, 0, 0, time.UTC), FollowerCount: 90, EngagementCount: 4000, VideoCount: 8},
			{AccountID: "a1", RecordedAt: time.Date(2025, 5, 31, 8, 0, 0, 0, time.UTC), FollowerCount: 95, EngagementCount: 4400, VideoCount: 9},
			{AccountID: "a1", RecordedAt: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC), FollowerCount: 100, EngagementCount: 5000, VideoCount: 10},
		},
	}}
	agg := New(store, snaps, &mockRefresher{})

	data, err := agg.GetDashboardData(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, data.Accounts, 1)

	series := data.Accounts[0].Series
	require.Len(t, series, 3)
	assert.Equal(t, SeriesPoint{Date: "May 30", Audience: 90, Engagement: 4000, Content: 8}, series[0])
	assert.Equal(t, SeriesPoint{Date: "Jun 1", Audience: 100, Engagement: 5000, Content: 10}, series[2])
}

func TestGetDashboardDataSeriesCappedAtThirty(t *testing.T) {
	history := make([]snapshots.Snapshot, 0, 45)
	for i := 0; i < 45; i++ {
		history = append(history, snapshots.Snapshot{
			AccountID:     "a1",
			RecordedAt:    time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			FollowerCount: int64(i),
		})
	}

	store := &mockAccountStore{byUser: map[string][]accounts.Account{
		"u1": {{ID: "a1", UserID: "u1", Platform: accounts.PlatformYouTube, ExternalID: "UC1"}},
	}}
	agg := New(store, &mockSnapshotStore{byAccount: map[string][]snapshots.Snapshot{"a1": history}}, &mockRefresher{})

	data, err := agg.GetDashboardData(context.Background(), "u1")

	require.NoError(t, err)
	series := data.Accounts[0].Series
	require.Len(t, series, 30)

	// most recent 30, ascending
	assert.Equal(t, int64(15), series[0].Audience)
	assert.Equal(t, int64(44), series[29].Audience)
}

func TestGetDashboardDataSnapshotLoadFailureKeepsHeadline(t *testing.T) {
	store := &mockAccountStore{byUser: map[string][]accounts.Account{
		"u1": {{ID: "a1", UserID: "u1", Platform: accounts.PlatformYouTube, ExternalID: "UC1", FollowerCount: 100}},
	}}
	agg := New(store, &mockSnapshotStore{err: errors.New("query failed")}, &mockRefresher{})

	data, err := agg.GetDashboardData(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, data.Accounts, 1)
	assert.Empty(t, data.Accounts[0].Series)
	assert.Equal(t, int64(100), data.Accounts[0].Audience)
}

func TestGetAccountDetail(t *testing.T) {
	store := &mockAccountStore{byUser: map[string][]accounts.Account{"u1": testAccounts()}}
	refresher := &mockRefresher{}
	agg := New(store, &mockSnapshotStore{}, refresher)

	detail, err := agg.GetAccountDetail(context.Background(), "u1", "a2")

	require.NoError(t, err)
	assert.Equal(t, "a2", detail.Account.ID)
	assert.Equal(t, accounts.PlatformTikTok, detail.Account.Platform)
	assert.Equal(t, []string{"a2"}, refresher.calls)
}

func TestGetAccountDetailNotFound(t *testing.T) {
	store := &mockAccountStore{byUser: map[string][]accounts.Account{"u1": testAccounts()}}
	agg := New(store, &mockSnapshotStore{}, &mockRefresher{})

	_, err := agg.GetAccountDetail(context.Background(), "u1", "missing")
	require.ErrorIs(t, err, accounts.ErrNotFound)

	// another user's account id is invisible
	_, err = agg.GetAccountDetail(context.Background(), "u2", "a1")
	require.ErrorIs(t, err, accounts.ErrNotFound)
}
