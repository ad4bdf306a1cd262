package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/growthlens/server/growthlens/accounts"
	"github.com/growthlens/server/growthlens/snapshots"
	"github.com/growthlens/server/internal/platform"
)

// implements AccountStore for testing
type mockAccounts struct {
	stored         []accounts.Account
	insertCalls    int
	lastInsert     accounts.InsertParams
	updateCalls    int
	lastMetrics    accounts.Metrics
	deleteCalls    int
	insertErr      error
	updateErr      error
	findByExternal func(userID, platform, externalID string) (*accounts.Account, error)
}

func (m *mockAccounts) ListAll(_ context.Context) ([]accounts.Account, error) {
	return m.stored, nil
}

func (m *mockAccounts) CountByUser(_ context.Context, userID string) (int, error) {
	count := 0
	for _, a := range m.stored {
		if a.UserID == userID {
			count++
		}
	}

	return count, nil
}

func (m *mockAccounts) FindByExternalID(_ context.Context, userID, platform, externalID string) (*accounts.Account, error) {
	if m.findByExternal != nil {
		return m.findByExternal(userID, platform, externalID)
	}

	for _, a := range m.stored {
		if a.UserID == userID && a.Platform == platform && a.ExternalID == externalID {
			found := a
			return &found, nil
		}
	}

	return nil, nil
}

func (m *mockAccounts) Insert(_ context.Context, params accounts.InsertParams) (*accounts.Account, error) {
	m.insertCalls++
	m.lastInsert = params

	if m.insertErr != nil {
		return nil, m.insertErr
	}

	account := accounts.Account{
		ID:              fmt.Sprintf("acct-%d", m.insertCalls),
		UserID:          params.UserID,
		Platform:        params.Platform,
		ExternalID:      params.ExternalID,
		Title:           params.Title,
		AvatarURL:       params.AvatarURL,
		FollowerCount:   params.Metrics.FollowerCount,
		EngagementCount: params.Metrics.EngagementCount,
		VideoCount:      params.Metrics.VideoCount,
		LastSyncedAt:    &params.LastSyncedAt,
		AccessToken:     params.AccessToken,
		RefreshToken:    params.RefreshToken,
		TokenExpiresAt:  params.TokenExpiresAt,
	}

	m.stored = append(m.stored, account)

	return &account, nil
}

func (m *mockAccounts) UpdateMetrics(_ context.Context, id, title, avatarURL string, metrics accounts.Metrics, syncedAt time.Time) (*accounts.Account, error) {
	m.updateCalls++
	m.lastMetrics = metrics

	if m.updateErr != nil {
		return nil, m.updateErr
	}

	// mirror UPDATE ... RETURNING: only the refreshed columns change, the
	// whole row comes back
	for i := range m.stored {
		if m.stored[i].ID != id {
			continue
		}

		at := syncedAt
		m.stored[i].Title = title
		m.stored[i].AvatarURL = avatarURL
		m.stored[i].FollowerCount = metrics.FollowerCount
		m.stored[i].EngagementCount = metrics.EngagementCount
		m.stored[i].VideoCount = metrics.VideoCount
		m.stored[i].LastSyncedAt = &at

		row := m.stored[i]
		return &row, nil
	}

	return nil, accounts.ErrNotFound
}

func (m *mockAccounts) Delete(_ context.Context, userID, id string) error {
	m.deleteCalls++

	for _, a := range m.stored {
		if a.UserID == userID && a.ID == id {
			return nil
		}
	}

	return accounts.ErrNotFound
}

// implements SnapshotStore for testing
type mockSnapshots struct {
	inserted  []snapshots.InsertParams
	insertErr error
	existsErr error
}

func (m *mockSnapshots) Insert(_ context.Context, params snapshots.InsertParams) error {
	if m.insertErr != nil {
		return m.insertErr
	}

	// mirror the storage-layer unique day constraint
	for _, s := range m.inserted {
		if s.AccountID == params.AccountID && sameDay(s.RecordedAt, params.RecordedAt) {
			return nil
		}
	}

	m.inserted = append(m.inserted, params)

	return nil
}

func (m *mockSnapshots) ExistsSince(_ context.Context, accountID string, since time.Time) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}

	for _, s := range m.inserted {
		if s.AccountID == accountID && !s.RecordedAt.Before(since) {
			return true, nil
		}
	}

	return false, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// implements PlanStore for testing
type mockPlans struct {
	plan string
}

func (m *mockPlans) GetPlan(_ context.Context, _ string) (string, error) {
	if m.plan == "" {
		return "free", nil
	}

	return m.plan, nil
}

// implements YouTubeAPI for testing
type mockYouTube struct {
	resolveCalls int
	fetchCalls   int
	resolve      func(input string) (string, error)
	fetch        func(channelID string) (*platform.ChannelStats, error)
}

func (m *mockYouTube) ResolveChannelID(_ context.Context, input string) (string, error) {
	m.resolveCalls++

	if m.resolve != nil {
		return m.resolve(input)
	}

	return "UCdefault", nil
}

func (m *mockYouTube) FetchChannel(_ context.Context, channelID string) (*platform.ChannelStats, error) {
	m.fetchCalls++

	if m.fetch != nil {
		return m.fetch(channelID)
	}

	return &platform.ChannelStats{
		ID:              channelID,
		Title:           "Example Channel",
		Thumbnail:       "https://img.example/x.jpg",
		SubscriberCount: 1000,
		ViewCount:       50000,
		VideoCount:      25,
	}, nil
}

// implements TikTokAPI for testing
type mockTikTok struct {
	exchangeCalls int
	fetchCalls    int
	exchange      func(code string) (*platform.TokenPair, error)
	fetchUserInfo func(accessToken string) (*platform.TikTokUserInfo, error)
}

func (m *mockTikTok) ExchangeCode(_ context.Context, code string) (*platform.TokenPair, error) {
	m.exchangeCalls++

	if m.exchange != nil {
		return m.exchange(code)
	}

	return &platform.TokenPair{
		AccessToken:  "act-1",
		RefreshToken: "rft-1",
		ExpiresIn:    86400,
		OpenID:       "open-1",
	}, nil
}

func (m *mockTikTok) FetchUserInfo(_ context.Context, accessToken string) (*platform.TikTokUserInfo, error) {
	m.fetchCalls++

	if m.fetchUserInfo != nil {
		return m.fetchUserInfo(accessToken)
	}

	return &platform.TikTokUserInfo{
		OpenID:        "open-1",
		DisplayName:   "creator",
		AvatarURL:     "https://img.example/a.jpg",
		FollowerCount: 1500,
		LikeCount:     90000,
		VideoCount:    120,
	}, nil
}

// implements TokenManager for testing
type mockTokens struct {
	calls       int
	forcedCalls int
	ensure      func(account *accounts.Account, force bool) (string, error)
}

func (m *mockTokens) EnsureValidToken(_ context.Context, account *accounts.Account, forceRefresh bool) (string, error) {
	m.calls++

	if forceRefresh {
		m.forcedCalls++
	}

	if m.ensure != nil {
		return m.ensure(account, forceRefresh)
	}

	return "act-valid", nil
}

// implements Lock for testing
type mockLock struct {
	acquireCalls int
	releaseCalls int
	held         bool
	acquireErr   error
}

func (m *mockLock) Acquire(_ context.Context, _ string) (bool, error) {
	m.acquireCalls++

	if m.acquireErr != nil {
		return false, m.acquireErr
	}

	return !m.held, nil
}

func (m *mockLock) Release(_ context.Context, _ string) {
	m.releaseCalls++
}
