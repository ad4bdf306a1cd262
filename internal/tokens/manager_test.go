package tokens

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthlens/server/growthlens/accounts"
	"github.com/growthlens/server/internal/platform"
)

// implements TokenStore for testing
type mockStore struct {
	updateCalls  int
	lastAccess   string
	lastRefresh  string
	lastExpiry   time.Time
	updateTokens func() (*accounts.Account, error)
}

func (m *mockStore) UpdateTokens(_ context.Context, id, accessToken, refreshToken string, expiresAt time.Time) (*accounts.Account, error) {
	m.updateCalls++
	m.lastAccess = accessToken
	m.lastRefresh = refreshToken
	m.lastExpiry = expiresAt

	if m.updateTokens != nil {
		return m.updateTokens()
	}

	return &accounts.Account{
		ID:             id,
		Platform:       accounts.PlatformTikTok,
		AccessToken:    &accessToken,
		RefreshToken:   &refreshToken,
		TokenExpiresAt: &expiresAt,
	}, nil
}

// implements Refresher for testing
type mockRefresher struct {
	calls        int
	refreshToken func(refreshToken string) (*platform.TokenPair, error)
}

func (m *mockRefresher) RefreshToken(_ context.Context, refreshToken string) (*platform.TokenPair, error) {
	m.calls++

	if m.refreshToken != nil {
		return m.refreshToken(refreshToken)
	}

	return &platform.TokenPair{
		AccessToken:  "act-new",
		RefreshToken: "rft-new",
		ExpiresIn:    86400,
	}, nil
}

func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func tiktokAccount(expiry *time.Time) *accounts.Account {
	return &accounts.Account{
		ID:             "acct-1",
		Platform:       accounts.PlatformTikTok,
		AccessToken:    strPtr("act-stored"),
		RefreshToken:   strPtr("rft-stored"),
		TokenExpiresAt: expiry,
	}
}

func newTestManager(store *mockStore, refresher *mockRefresher, now time.Time) *Manager {
	m := NewManager(store, refresher)
	m.now = func() time.Time { return now }

	return m
}

func TestEnsureValidToken_FutureExpiry_NoRefresh(t *testing.T) {
	now := time.Now()
	store := &mockStore{}
	refresher := &mockRefresher{}
	manager := newTestManager(store, refresher, now)

	account := tiktokAccount(timePtr(now.Add(1 * time.Hour)))

	token, err := manager.EnsureValidToken(context.Background(), account, false)

	require.NoError(t, err)
	assert.Equal(t, "act-stored", token)
	assert.Equal(t, 0, refresher.calls, "unexpired token must not trigger a refresh")
	assert.Equal(t, 0, store.updateCalls)
}

func TestEnsureValidToken_NoTrackedExpiry_NoRefresh(t *testing.T) {
	// accounts connected before expiry tracking keep working untouched
	store := &mockStore{}
	refresher := &mockRefresher{}
	manager := newTestManager(store, refresher, time.Now())

	account := tiktokAccount(nil)

	token, err := manager.EnsureValidToken(context.Background(), account, false)

	require.NoError(t, err)
	assert.Equal(t, "act-stored", token)
	assert.Equal(t, 0, refresher.calls)
}

func TestEnsureValidToken_ExpiredToken_RefreshesOnce(t *testing.T) {
	now := time.Now()
	store := &mockStore{}
	refresher := &mockRefresher{}
	manager := newTestManager(store, refresher, now)

	account := tiktokAccount(timePtr(now.Add(-1 * time.Minute)))

	token, err := manager.EnsureValidToken(context.Background(), account, false)

	require.NoError(t, err)
	assert.Equal(t, "act-new", token)
	assert.Equal(t, 1, refresher.calls)
	assert.Equal(t, 1, store.updateCalls)
	assert.Equal(t, "act-new", store.lastAccess)
	assert.Equal(t, "rft-new", store.lastRefresh)
	assert.Equal(t, now.Add(86400*time.Second), store.lastExpiry)

	// rotated pair written back onto the account
	require.NotNil(t, account.AccessToken)
	assert.Equal(t, "act-new", *account.AccessToken)
	require.NotNil(t, account.RefreshToken)
	assert.Equal(t, "rft-new", *account.RefreshToken)
}

func TestEnsureValidToken_ForceRefresh(t *testing.T) {
	now := time.Now()
	store := &mockStore{}
	refresher := &mockRefresher{}
	manager := newTestManager(store, refresher, now)

	// token still valid, but force wins
	account := tiktokAccount(timePtr(now.Add(1 * time.Hour)))

	token, err := manager.EnsureValidToken(context.Background(), account, true)

	require.NoError(t, err)
	assert.Equal(t, "act-new", token)
	assert.Equal(t, 1, refresher.calls)
}

func TestEnsureValidToken_InvalidGrantPropagates(t *testing.T) {
	now := time.Now()
	store := &mockStore{}
	refresher := &mockRefresher{
		refreshToken: func(string) (*platform.TokenPair, error) {
			return nil, platform.ErrInvalidGrant
		},
	}
	manager := newTestManager(store, refresher, now)

	account := tiktokAccount(timePtr(now.Add(-1 * time.Minute)))

	_, err := manager.EnsureValidToken(context.Background(), account, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, platform.ErrInvalidGrant)
	assert.Equal(t, 0, store.updateCalls, "failed refresh must not persist anything")
}

func TestEnsureValidToken_MissingRefreshToken(t *testing.T) {
	store := &mockStore{}
	refresher := &mockRefresher{}
	manager := newTestManager(store, refresher, time.Now())

	account := tiktokAccount(nil)
	account.RefreshToken = nil

	_, err := manager.EnsureValidToken(context.Background(), account, true)

	require.Error(t, err)
	assert.ErrorIs(t, err, platform.ErrInvalidGrant)
	assert.Equal(t, 0, refresher.calls)
}

func TestEnsureValidToken_RejectsNonTikTok(t *testing.T) {
	manager := newTestManager(&mockStore{}, &mockRefresher{}, time.Now())

	account := &accounts.Account{ID: "acct-yt", Platform: accounts.PlatformYouTube}

	_, err := manager.EnsureValidToken(context.Background(), account, false)

	assert.Error(t, err)
}
