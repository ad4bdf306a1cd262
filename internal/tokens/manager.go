// Package tokens keeps a TikTok account's OAuth access token usable.
// Refresh tokens rotate on every exchange, so a new pair is persisted in a
// single account update before it is handed back to the caller.
package tokens

import (
	"context"
	"fmt"
	"time"

	"github.com/growthlens/server/growthlens/accounts"
	"github.com/growthlens/server/internal/platform"
)

// persists rotated token pairs
type TokenStore interface {
	UpdateTokens(ctx context.Context, id, accessToken, refreshToken string, expiresAt time.Time) (*accounts.Account, error)
}

// exchanges a refresh token for a new pair
type Refresher interface {
	RefreshToken(ctx context.Context, refreshToken string) (*platform.TokenPair, error)
}

// Manager guarantees a valid access token exists before a metrics call
type Manager struct {
	store  TokenStore
	tiktok Refresher
	now    func() time.Time
}

// creates a token lifecycle manager
func NewManager(store TokenStore, tiktok Refresher) *Manager {
	return &Manager{
		store:  store,
		tiktok: tiktok,
		now:    time.Now,
	}
}

// returns a usable access token for the account, refreshing if the stored
// token is expired or forceRefresh is set. The refreshed pair is persisted
// and written back onto the passed account.
//
// Accounts connected before expiry tracking existed have no stored expiry;
// their token is returned as-is unless a refresh is forced.
func (m *Manager) EnsureValidToken(ctx context.Context, account *accounts.Account, forceRefresh bool) (string, error) {
	if account.Platform != accounts.PlatformTikTok {
		return "", fmt.Errorf("account %s is not a tiktok account", account.ID)
	}

	stored := ""
	if account.AccessToken != nil {
		stored = *account.AccessToken
	}

	if !forceRefresh {
		if account.TokenExpiresAt == nil {
			return stored, nil
		}

		if m.now().Before(*account.TokenExpiresAt) {
			return stored, nil
		}
	}

	if account.RefreshToken == nil || *account.RefreshToken == "" {
		return "", fmt.Errorf("account %s has no refresh token: %w", account.ID, platform.ErrInvalidGrant)
	}

	pair, err := m.tiktok.RefreshToken(ctx, *account.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to refresh token for account %s: %w", account.ID, err)
	}

	expiresAt := m.now().Add(time.Duration(pair.ExpiresIn) * time.Second)

	updated, err := m.store.UpdateTokens(ctx, account.ID, pair.AccessToken, pair.RefreshToken, expiresAt)
	if err != nil {
		return "", fmt.Errorf("failed to persist refreshed tokens for account %s: %w", account.ID, err)
	}

	account.AccessToken = updated.AccessToken
	account.RefreshToken = updated.RefreshToken
	account.TokenExpiresAt = updated.TokenExpiresAt

	return pair.AccessToken, nil
}
